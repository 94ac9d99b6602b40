package fileinfo

import (
	"bufio"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Scheme represents the kind of location a session starts from.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeSMB  Scheme = "smb"
)

// Parsed contains a normalized view of a start location.
// Display is a canonical string (smb://host/share/seg...),
// Native is the provider-native absolute path used for I/O.
type Parsed struct {
	Scheme   Scheme
	Host     string
	Share    string
	Segments []string
	Raw      string
	Display  string
	Native   string
	Provider string // "local" | "smb"
	User     string
	Password string
	Domain   string
}

// DisplayFor renders a provider-native path of this location for the user.
// Local paths are shown as-is; SMB paths get the smb://host/share prefix.
func (p Parsed) DisplayFor(native string) string {
	if p.Provider != "smb" {
		return native
	}
	base := "smb://" + path.Join(p.Host, p.Share)
	rel := strings.TrimLeft(native, "/")
	if rel == "" {
		return base
	}
	return base + "/" + rel
}

// Dialer opens an SMB share. Swappable for tests.
type Dialer func(host, share string, timeout time.Duration) (VFS, error)

// DefaultDialer mounts shares through DialSMB.
func DefaultDialer(host, share string, timeout time.Duration) (VFS, error) {
	return DialSMB(host, share, timeout)
}

// ResolveStart maps the start location to a provider and its native path.
// Local paths are made absolute against the host working directory.
// smb:// (and //host/share) locations use an existing CIFS mount when one is
// found, otherwise dial is used to mount the share directly.
func ResolveStart(input string, dial Dialer, timeout time.Duration) (VFS, Parsed, error) {
	raw := strings.TrimSpace(input)
	if !isSMBURL(raw) && !strings.HasPrefix(raw, "//") {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, Parsed{Raw: input}, err
		}
		return NewLocalFS(), Parsed{Raw: input, Scheme: SchemeFile, Display: abs, Native: abs, Provider: "local"}, nil
	}

	host, share, segs, user, pass, domain := parseSMBURL(raw)
	if host == "" || share == "" {
		return nil, Parsed{Raw: input, Scheme: SchemeSMB, Display: canonicalizeSMB(raw), Provider: "smb"}, errInvalidSMB()
	}
	p := Parsed{
		Scheme:   SchemeSMB,
		Host:     host,
		Share:    share,
		Segments: segs,
		Raw:      input,
		User:     user,
		Password: pass,
		Domain:   domain,
	}
	p.Display = canonicalizeSMB("smb://" + path.Join(host, share))
	if len(segs) > 0 {
		p.Display += "/" + path.Join(segs...)
	}

	if mp, ok := findSMBMount(host, share); ok {
		p.Provider = "local"
		p.Native = filepath.Join(append([]string{mp}, segs...)...)
		return NewLocalFS(), p, nil
	}

	if user != "" || pass != "" || domain != "" {
		PutCachedCredentials(host, share, Credentials{Domain: domain, Username: user, Password: pass})
	}
	if dial == nil {
		dial = DefaultDialer
	}
	vfs, err := dial(host, share, timeout)
	if err != nil {
		return nil, p, err
	}
	p.Provider = "smb"
	p.Native = "/" + path.Join(segs...)
	return vfs, p, nil
}

func isSMBURL(p string) bool {
	return strings.HasPrefix(strings.ToLower(p), "smb://")
}

func canonicalizeSMB(url string) string {
	// cheap canonicalization for display purposes
	s := strings.TrimSpace(url)
	s = strings.ReplaceAll(s, "\\", "/")
	if !strings.HasPrefix(strings.ToLower(s), "smb://") {
		s = "smb://" + strings.TrimPrefix(s, "//")
	}
	return s
}

func errInvalidSMB() error {
	return errors.New("smb location must name a host and a share (smb://host/share)")
}

// parseSMBURL extracts host, share, segments from an smb-like path.
// Accepts forms: smb://[user[:pass]@]host/share/..., //host/share/...
func parseSMBURL(u string) (host, share string, segments []string, user, pass, domain string) {
	s := strings.TrimSpace(u)
	if strings.HasPrefix(s, "//") && !isSMBURL(s) {
		s = "smb:" + s // normalize to smb://
	}
	if !isSMBURL(s) {
		return "", "", nil, "", "", ""
	}
	t := s[len("smb://"):]
	// Extract and strip creds
	if at := strings.LastIndex(t, "@"); at >= 0 {
		cred := t[:at]
		t = t[at+1:]
		if colon := strings.Index(cred, ":"); colon >= 0 {
			pass = cred[colon+1:]
			cred = cred[:colon]
		}
		// Detect domain separator
		if semi := strings.Index(cred, ";"); semi >= 0 {
			domain = cred[:semi]
			user = cred[semi+1:]
		} else if bs := strings.Index(cred, "\\"); bs >= 0 {
			domain = cred[:bs]
			user = cred[bs+1:]
		} else {
			user = cred
		}
	}
	parts := strings.Split(strings.Trim(t, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, "", "", ""
	}
	host = parts[0]
	share = parts[1]
	for _, seg := range parts[2:] {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return
}

// findSMBMount attempts to find a mounted CIFS/SMB mount matching host/share.
// It scans /proc/self/mountinfo (Linux) and matches either mount source (//host/share)
// or unc=\\host\share in options. Other platforms have no such file.
func findSMBMount(host, share string) (mountPoint string, ok bool) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return "", false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fsType, src, mp, superOpts, opts, parsed := parseMountInfo(scanner.Text())
		if !parsed {
			continue
		}
		lfs := strings.ToLower(fsType)
		if !(lfs == "cifs" || strings.Contains(lfs, "smb")) {
			continue
		}
		// Try source first: expected form //host/share
		shost, sshare := parseSourceUNC(src)
		if shost != "" && strings.EqualFold(shost, host) && strings.EqualFold(sshare, share) {
			return mp, true
		}
		// Fallback: look for unc=\\host\share in options
		unc := findUNCOption(superOpts)
		if unc == "" {
			unc = findUNCOption(opts)
		}
		if unc != "" {
			shost, sshare = parseBackslashUNC(unc)
			if shost != "" && strings.EqualFold(shost, host) && strings.EqualFold(sshare, share) {
				return mp, true
			}
		}
	}
	return "", false
}

// parseMountInfo extracts minimal fields from a mountinfo line.
func parseMountInfo(line string) (fsType, source, mountPoint, superOpts, opts string, ok bool) {
	parts := strings.SplitN(line, " - ", 2)
	if len(parts) != 2 {
		return
	}
	left := strings.Fields(parts[0])
	right := strings.Fields(parts[1])
	// mountinfo may have zero optional fields; accept 6+ tokens on the left side.
	if len(left) < 6 || len(right) < 3 {
		return
	}
	mountPoint = decodeMountPoint(left[4])
	opts = strings.Join(left[5:], " ")
	fsType = right[0]
	source = right[1]
	superOpts = strings.Join(right[2:], " ")
	ok = true
	return
}

// decodeMountPoint converts mountinfo escape sequences (e.g., \040 -> space).
func decodeMountPoint(s string) string {
	s = strings.ReplaceAll(s, "\\040", " ")
	s = strings.ReplaceAll(s, "\\134", "\\")
	return s
}

func parseSourceUNC(src string) (host, share string) {
	if strings.HasPrefix(src, "//") {
		parts := strings.Split(strings.TrimPrefix(src, "//"), "/")
		if len(parts) >= 2 {
			return parts[0], parts[1]
		}
	}
	return "", ""
}

func findUNCOption(opts string) string {
	for _, part := range strings.Split(opts, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && strings.ToLower(kv[0]) == "unc" {
			return kv[1]
		}
	}
	return ""
}

func parseBackslashUNC(unc string) (host, share string) {
	s := strings.TrimLeft(unc, `\`)
	parts := strings.Split(s, `\`)
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return "", ""
}
