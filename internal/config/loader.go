// Package config loads client configuration from a YAML file and the
// REPLYIFY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "REPLYIFY"

// Configuration keys. Each key is read from the config file as is and from
// the environment as REPLYIFY_<KEY>.
const (
	KeyAccessToken    = "access_token"
	KeyAPIBase        = "api_base"
	KeyUploadAPIBase  = "api_upload_base"
	KeyAPIVersion     = "api_version"
	KeyVerifySSLCerts = "api_verify_ssl_certs"
	KeyHTTPTimeout    = "http_timeout"
	KeyRetryMax       = "retry_max"
	KeyDebug          = "debug"
	KeyUserAgent      = "user_agent"
)

var keys = []string{
	KeyAccessToken,
	KeyAPIBase,
	KeyUploadAPIBase,
	KeyAPIVersion,
	KeyVerifySSLCerts,
	KeyHTTPTimeout,
	KeyRetryMax,
	KeyDebug,
	KeyUserAgent,
}

// Load builds a Config from the library defaults, then configFile, then the
// environment. An empty configFile looks for config.yml in ~/.replyify and
// ignores it when missing; an explicit configFile must exist.
func Load(configFile string) (*replyify.Config, error) {
	v := viper.New()

	v.SetDefault(KeyAPIBase, constants.DefaultAPIBase)
	v.SetDefault(KeyUploadAPIBase, constants.DefaultUploadAPIBase)
	v.SetDefault(KeyVerifySSLCerts, true)
	v.SetDefault(KeyHTTPTimeout, constants.DefaultHTTPTimeout.String())
	v.SetDefault(KeyRetryMax, 0)

	v.SetEnvPrefix(EnvPrefix)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment for %s: %w", key, err)
		}
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	return fromViper(v)
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", constants.ErrConfigFileNotFound, configFile)
		}

		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil //nolint:nilerr // no home directory means no default config file
		}

		v.AddConfigPath(filepath.Join(home, ".replyify"))
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}

func fromViper(v *viper.Viper) (*replyify.Config, error) {
	config := replyify.NewConfig()

	config.AccessToken = v.GetString(KeyAccessToken)
	config.APIBase = v.GetString(KeyAPIBase)
	config.UploadAPIBase = v.GetString(KeyUploadAPIBase)
	config.APIVersion = v.GetString(KeyAPIVersion)
	config.UserAgent = v.GetString(KeyUserAgent)

	verify, err := cast.ToBoolE(v.Get(KeyVerifySSLCerts))
	if err != nil {
		return nil, invalid(KeyVerifySSLCerts, err)
	}

	config.SkipTLSVerify = !verify

	timeout, err := cast.ToDurationE(v.Get(KeyHTTPTimeout))
	if err != nil || timeout <= 0 {
		return nil, invalid(KeyHTTPTimeout, err)
	}

	config.HTTPTimeout = timeout

	retryMax, err := cast.ToIntE(v.Get(KeyRetryMax))
	if err != nil || retryMax < 0 {
		return nil, invalid(KeyRetryMax, err)
	}

	config.RetryMax = retryMax

	debug, err := cast.ToBoolE(v.Get(KeyDebug))
	if err != nil {
		return nil, invalid(KeyDebug, err)
	}

	config.Debug = debug

	return config, nil
}

func invalid(key string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s is out of range", constants.ErrInvalidConfigValue, key)
	}

	return fmt.Errorf("%w: %s: %w", constants.ErrInvalidConfigValue, key, err)
}
