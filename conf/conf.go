// Package conf holds the command-line configuration and the TOML circuit
// setting file.
package conf

type Conf struct {
	DevMode            bool   `long:"dev-mode" description:"run in dev mode" env:"QBLOCH_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QBLOCH_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"QBLOCH_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./logs" env:"QBLOCH_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QBLOCH_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QBLOCH_LOG_ROTATION_MAX_DAYS"`
	SettingPath        string `long:"setting-path" description:"circuit setting file path" default:"./qbloch.toml" env:"QBLOCH_SETTING_PATH"`
}
