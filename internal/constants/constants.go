package constants

import "time"

// Application constants
const (
	ApplicationName  = "sfm"
	ApplicationTitle = "Simple File Manager"
)

// Menu command identifiers
const (
	CommandList            = 1
	CommandCreateFile      = 2
	CommandCreateDirectory = 3
	CommandDelete          = 4
	CommandCopy            = 5
	CommandMove            = 6
	CommandInspect         = 7
	CommandNavigate        = 8
	CommandExit            = 9
)

// File size constants
const (
	FileSizeUnit = 1024
)

// FileSizeUnits is the single unit ladder used for every size shown to the user
var FileSizeUnits = [...]string{"B", "KB", "MB", "GB", "TB", "PB"}

// TimestampLayout renders DD-MM-YYYY HH:MM:SS
const TimestampLayout = "02-01-2006 15:04:05"

// File system constants
const (
	RootPath            = "/"
	ParentDirectoryName = ".."
	InspectCancelInput  = "0"
	PartialFileSuffix   = ".part"
	ReplacedFileSuffix  = ".replaced"
	DefaultFilePerm     = 0o644
	DefaultDirPerm      = 0o755
)

// SMB constants
const (
	SMBScheme      = "smb://"
	SMBPort        = "445"
	SMBDialTimeout = 5 * time.Second
	KeyringService = "sfm.smb"
)

// Configuration defaults
const (
	ConfigFileName    = "config.toml"
	ConfigVendorDir   = "sfm"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "console"
	DefaultShowHidden = true
)
