// Package iomycnf reads MySQL client credentials from an option file such
// as ~/.my.cnf.
package iomycnf

import (
	"os"
	"strconv"

	"github.com/gnames/symbdb/pkg/config"
	"gopkg.in/ini.v1"
)

// Credentials are the connection settings found in an option file. Empty
// fields were not set in the file.
type Credentials struct {
	User     string
	Password string
	Host     string
	Port     int
	Database string
}

// Read parses the [client] and [mysql] sections of an option file.
// A missing file is not an error, it gives empty credentials.
func Read(path string) (Credentials, error) {
	var res Credentials

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return res, nil
	}

	opts := ini.LoadOptions{
		// MySQL allows options without values, like skip-ssl.
		AllowBooleanKeys: true,
		// Passwords may contain escaped quotes.
		UnescapeValueDoubleQuotes: true,
	}
	f, err := ini.LoadSources(opts, path)
	if err != nil {
		return res, MyCnfError(path, err)
	}

	client := f.Section("client")
	res.User = client.Key("user").String()
	res.Password = client.Key("password").String()
	res.Host = client.Key("host").String()
	res.Database = f.Section("mysql").Key("database").String()
	if res.Database == "" {
		res.Database = client.Key("database").String()
	}

	if port := client.Key("port").String(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return res, MyCnfError(path, err)
		}
		res.Port = p
	}

	return res, nil
}

// Options converts credentials to config options. Only fields present in
// the file produce an option.
func (c Credentials) Options() []config.Option {
	var res []config.Option
	if c.User != "" {
		res = append(res, config.OptSourceUser(c.User))
	}
	if c.Password != "" {
		res = append(res, config.OptSourcePassword(c.Password))
	}
	if c.Host != "" {
		res = append(res, config.OptSourceHost(c.Host))
	}
	if c.Port > 0 {
		res = append(res, config.OptSourcePort(c.Port))
	}
	if c.Database != "" {
		res = append(res, config.OptSourceDatabase(c.Database))
	}
	return res
}

// Apply fills source credentials of cfg from the option file when the user
// is not configured otherwise. The file only replaces defaults: explicit
// options, the ones that came from flags, environment or config.yaml, are
// applied again on top of it.
func Apply(cfg *config.Config, path string, explicit []config.Option) error {
	if cfg.Source.User != "" {
		return nil
	}

	creds, err := Read(path)
	if err != nil {
		return err
	}
	if creds.User == "" {
		return NoCredentialsError(path)
	}

	cfg.Update(creds.Options())
	cfg.Update(explicit)
	return nil
}
