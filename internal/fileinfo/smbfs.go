package fileinfo

import (
	"io"
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"sfm/internal/constants"
)

// SMBFS implements VFS over a single mounted SMB share. Paths are
// share-relative with forward slashes and "/" as the share root.
type SMBFS struct {
	host  string
	share string
	conn  net.Conn
	sess  *smb2.Session
	fs    *smb2.Share
}

// DialSMB connects to host, authenticates and mounts share. The session
// stays open until Close.
func DialSMB(host, share string, timeout time.Duration) (*SMBFS, error) {
	if timeout <= 0 {
		timeout = constants.SMBDialTimeout
	}
	creds := getCredentials(host, share, "")

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     creds.Username,
			Password: creds.Password,
			Domain:   creds.Domain,
		},
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, constants.SMBPort), timeout)
	if err != nil {
		return nil, err
	}

	sess, err := d.Dial(conn)
	if err != nil {
		conn.Close()
		if isAuthError(err) {
			ClearCachedCredentials(host, share)
		}
		return nil, err
	}

	mounted, err := sess.Mount(share)
	if err != nil {
		sess.Logoff()
		conn.Close()
		if isAuthError(err) {
			ClearCachedCredentials(host, share)
		}
		return nil, err
	}

	// Persist credentials after a successful mount if requested
	if creds.Persist && secretStore != nil {
		_ = secretStore.Set(host, share, creds.Domain, creds.Username, creds.Password)
	}

	return &SMBFS{host: host, share: share, conn: conn, sess: sess, fs: mounted}, nil
}

// Close unmounts the share and ends the session.
func (s *SMBFS) Close() error {
	_ = s.fs.Umount()
	_ = s.sess.Logoff()
	return s.conn.Close()
}

// Host returns the server name the share was mounted from.
func (s *SMBFS) Host() string { return s.host }

// Share returns the mounted share name.
func (s *SMBFS) Share() string { return s.share }

// native converts a share path into the form go-smb2 expects: relative,
// no leading separator. The share root maps to rootName.
func native(p, rootName string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(path.Clean("/"+p), "/")
	if p == "" {
		return rootName
	}
	return p
}

func (s *SMBFS) ReadDir(p string) ([]os.DirEntry, error) {
	fis, err := s.fs.ReadDir(native(p, ""))
	if err != nil {
		return nil, err
	}
	out := make([]os.DirEntry, 0, len(fis))
	for _, fi := range fis {
		// skip "." entries if any
		name := fi.Name()
		if name == "." || name == ".." {
			continue
		}
		out = append(out, smbDirEntry{fi: fi})
	}
	return out, nil
}

func (s *SMBFS) Stat(p string) (os.FileInfo, error) {
	return s.fs.Stat(native(p, "."))
}

func (s *SMBFS) Lstat(p string) (os.FileInfo, error) {
	return s.fs.Lstat(native(p, "."))
}

func (s *SMBFS) Open(p string) (io.ReadCloser, error) {
	f, err := s.fs.Open(native(p, "."))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *SMBFS) OpenFile(p string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	f, err := s.fs.OpenFile(native(p, "."), flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *SMBFS) Mkdir(p string, perm os.FileMode) error {
	return s.fs.Mkdir(native(p, "."), perm)
}

func (s *SMBFS) Remove(p string) error {
	return s.fs.Remove(native(p, "."))
}

func (s *SMBFS) Rename(oldpath, newpath string) error {
	return s.fs.Rename(native(oldpath, "."), native(newpath, "."))
}

// BirthTime reads the creation time SMB reports with every stat.
func (s *SMBFS) BirthTime(_ string, fi os.FileInfo) (time.Time, bool) {
	st, ok := fi.(*smb2.FileStat)
	if !ok || st.CreationTime.IsZero() {
		return time.Time{}, false
	}
	return st.CreationTime, true
}

func (s *SMBFS) Capabilities() Capabilities { return Capabilities{BirthTime: true, Remote: true} }

// Join joins path elements using forward slashes (provider-native for SMBFS).
func (*SMBFS) Join(elem ...string) string { return path.Join(elem...) }
func (*SMBFS) Dir(p string) string        { return path.Dir(p) }
func (*SMBFS) IsAbs(p string) bool        { return path.IsAbs(p) }
func (*SMBFS) Clean(p string) string      { return path.Clean(p) }
func (*SMBFS) Root(string) string         { return "/" }

// Base returns last element after splitting by '/'.
func (*SMBFS) Base(p string) string { return path.Base(p) }

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	// Common indicators from Windows/SMB servers
	if strings.Contains(e, "logon is invalid") ||
		strings.Contains(e, "bad username") ||
		strings.Contains(e, "authentication") ||
		strings.Contains(e, "status_logon_failure") ||
		strings.Contains(e, "access is denied") {
		return true
	}
	return false
}
