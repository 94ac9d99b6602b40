package console

import (
	"strings"

	"sfm/internal/fileinfo"
)

// CredentialsPrompt asks the user for SMB credentials. It implements
// fileinfo.CredentialsProvider.
type CredentialsPrompt struct {
	prompter    Prompter
	out         *Printer
	askRemember bool
}

// NewCredentialsPrompt creates a provider. askRemember offers to store the
// answer in the keyring.
func NewCredentialsPrompt(p Prompter, out *Printer, askRemember bool) *CredentialsPrompt {
	return &CredentialsPrompt{prompter: p, out: out, askRemember: askRemember}
}

// Get prompts for a user name (optionally DOMAIN\user or DOMAIN;user) and a password.
func (c *CredentialsPrompt) Get(host, share, relPath string) (fileinfo.Credentials, error) {
	c.out.Bold("Login required for smb://%s/%s", host, share)
	login, err := c.prompter.InputText("Username")
	if err != nil {
		return fileinfo.Credentials{}, err
	}
	domain, user := splitLogin(strings.TrimSpace(login))
	pass, err := c.prompter.InputSecret("Password")
	if err != nil {
		return fileinfo.Credentials{}, err
	}
	creds := fileinfo.Credentials{Domain: domain, Username: user, Password: pass}
	if c.askRemember {
		remember, err := c.prompter.Confirm("Remember these credentials")
		if err != nil {
			return fileinfo.Credentials{}, err
		}
		creds.Persist = remember
	}
	return creds, nil
}

func splitLogin(login string) (domain, user string) {
	if i := strings.IndexAny(login, `\;`); i >= 0 {
		return login[:i], login[i+1:]
	}
	return "", login
}
