/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/hccopy/pkg/config"
	"github.com/spf13/pflag"
)

// promptLine writes label to w and reads one trimmed line from r.
func promptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question. Empty input returns def.
func confirm(r *bufio.Reader, w io.Writer, question string, def bool) bool {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(w, "%s %s ", question, hint)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// promptCredentials fills the missing fields of creds interactively.
// Fields that already have a value (from config, env, or flags) are
// offered for reuse first; the token is never echoed back in full.
func promptCredentials(r *bufio.Reader, w io.Writer, tenant string, creds *config.Credentials) error {
	fmt.Fprintf(w, "\n%s tenant\n", tenant)

	field := func(name, current, display string) (string, error) {
		if current != "" {
			if confirm(r, w, fmt.Sprintf("  Use %s %q?", name, display), true) {
				return current, nil
			}
		}
		return promptLine(r, w, "  "+strings.ToUpper(name[:1])+name[1:])
	}

	var err error
	if creds.Subdomain, err = field("subdomain", creds.Subdomain, creds.Subdomain); err != nil {
		return err
	}
	if creds.Email, err = field("email", creds.Email, creds.Email); err != nil {
		return err
	}
	if creds.APIToken, err = field("API token", creds.APIToken, creds.MaskedToken()); err != nil {
		return err
	}

	if !creds.Complete() {
		return fmt.Errorf("%s tenant credentials are incomplete", strings.ToLower(tenant))
	}
	return nil
}

// applyCredentialFlags overlays set command-line flags onto creds.
// Flags named <prefix>-subdomain, <prefix>-email, and <prefix>-token
// take precedence over config file and environment values.
func applyCredentialFlags(flags *pflag.FlagSet, prefix string, creds *config.Credentials) {
	if flags.Changed(prefix + "-subdomain") {
		creds.Subdomain, _ = flags.GetString(prefix + "-subdomain")
	}
	if flags.Changed(prefix + "-email") {
		creds.Email, _ = flags.GetString(prefix + "-email")
	}
	if flags.Changed(prefix + "-token") {
		creds.APIToken, _ = flags.GetString(prefix + "-token")
	}
}

// credentialFlags declares the standard credential flag triple for one tenant.
func credentialFlags(flags *pflag.FlagSet, prefix, tenant string) {
	flags.String(prefix+"-subdomain", "", fmt.Sprintf("%s Zendesk subdomain", tenant))
	flags.String(prefix+"-email", "", fmt.Sprintf("%s agent email address", tenant))
	flags.String(prefix+"-token", "", fmt.Sprintf("%s API token", tenant))
}
