// Package config manages the ~/.lassolink/config.yaml file through viper,
// with environment overrides under the LASSOLINK_ prefix.
package config
