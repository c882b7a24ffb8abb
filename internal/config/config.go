// Package config parses the YAML configuration file accepted by the
// create command: environment name, SSH credentials, and the SSH
// port the provisioned instance will expose.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CreateConfig is the on-disk shape of the file passed to
// "create --config".
type CreateConfig struct {
	Name string    `yaml:"name"`
	SSH  SSHConfig `yaml:"ssh"`
}

// SSHConfig names the credentials and port used to reach the
// provisioned instance.
type SSHConfig struct {
	Username       string `yaml:"username"`
	PrivateKeyPath string `yaml:"private_key_path"`
	PublicKeyPath  string `yaml:"public_key_path"`
	Port           int    `yaml:"port"`
}

// Load reads and parses the YAML config file at path.
func Load(path string) (CreateConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return CreateConfig{}, errors.Wrapf(err, "reading config file %s", path)
	}

	var cfg CreateConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return CreateConfig{}, errors.Wrapf(err, "parsing config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return CreateConfig{}, err
	}

	return cfg, nil
}

// Validate reports the first missing required field, if any.
func (c CreateConfig) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("config: name is required")
	case c.SSH.Username == "":
		return errors.New("config: ssh.username is required")
	case c.SSH.PrivateKeyPath == "":
		return errors.New("config: ssh.private_key_path is required")
	case c.SSH.PublicKeyPath == "":
		return errors.New("config: ssh.public_key_path is required")
	case c.SSH.Port == 0:
		return errors.New("config: ssh.port is required")
	default:
		return nil
	}
}
