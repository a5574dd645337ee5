/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/carverauto/unifi-lte-exporter/pkg/logger"
	"github.com/carverauto/unifi-lte-exporter/pkg/models"
	"github.com/spf13/pflag"
)

var errEmptyPasswordFile = errors.New("password file is empty")

// cliOptions holds the command line. Only flags that were set override the
// loaded configuration.
type cliOptions struct {
	flags *pflag.FlagSet

	configPath   string
	hostname     string
	username     string
	passwordFile string
	interval     time.Duration
	listen       string
	site         string
	insecure     bool
	runAsUser    string
	debug        bool
	showVersion  bool
}

func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}

	fs := pflag.NewFlagSet("unifi-lte-exporter", pflag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON config file")
	fs.StringVarP(&opts.hostname, "hostname", "H", "", "Controller hostname or base URL")
	fs.StringVarP(&opts.username, "username", "u", "", "Controller username")
	fs.StringVar(&opts.passwordFile, "password-file", "", "File containing the controller password")
	fs.DurationVarP(&opts.interval, "interval", "i", models.DefaultPollInterval, "Poll interval")
	fs.StringVarP(&opts.listen, "listen", "l", models.DefaultListenAddr, "Metrics listen address")
	fs.StringVar(&opts.site, "site", models.DefaultSite, "Controller site name")
	fs.BoolVar(&opts.insecure, "insecure", true, "Skip controller TLS certificate verification")
	fs.StringVar(&opts.runAsUser, "user", "", "Drop privileges to this user after binding the listener")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.flags = fs

	return opts, nil
}

// apply overlays the flags that were given explicitly onto cfg.
func (o *cliOptions) apply(cfg *models.ExporterConfig) error {
	if o.changed("hostname") {
		cfg.Hostname = o.hostname
	}

	if o.changed("username") {
		cfg.Username = o.username
	}

	if o.changed("password-file") {
		password, err := readPasswordFile(o.passwordFile)
		if err != nil {
			return err
		}

		cfg.Password = password
	}

	if o.changed("interval") {
		cfg.PollInterval = models.Duration(o.interval)
	}

	if o.changed("listen") {
		cfg.ListenAddr = o.listen
	}

	if o.changed("site") {
		cfg.Site = o.site
	}

	if o.changed("insecure") {
		cfg.InsecureSkipVerify = o.insecure
	}

	if o.changed("user") {
		cfg.RunAsUser = o.runAsUser
	}

	if o.debug {
		if cfg.Logging == nil {
			cfg.Logging = logger.DefaultConfig()
		}

		cfg.Logging.Debug = true
	}

	return nil
}

func (o *cliOptions) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

func readPasswordFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}

	password := strings.TrimRight(string(data), "\r\n")
	if password == "" {
		return "", fmt.Errorf("%w: %s", errEmptyPasswordFile, path)
	}

	return password, nil
}
