package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
)

func setViperDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("logfile", "")

	// Device format. samplerate 0 accepts the output device's preference.
	viper.SetDefault("samplerate", 0)
	viper.SetDefault("framesperbuffer", 512)

	// Spatialization.
	viper.SetDefault("referencedistance", 10.0)
	viper.SetDefault("panning", true)
	viper.SetDefault("amplitudetimeconstant", 100*time.Millisecond)
	viper.SetDefault("cutofftimeconstant", 100*time.Millisecond)
	viper.SetDefault("openaircutoff", 20000.0)
	viper.SetDefault("roomcutoff", 400.0)

	// Pipeline scheduling.
	viper.SetDefault("controlinterval", 5*time.Millisecond)
	viper.SetDefault("capturequeuecapacity", 4096)

	// Prerecorded playback.
	viper.SetDefault("playbackloop", false)
	viper.SetDefault("playbackoffset", 0)
}

// LoadConfig sets the defaults and reads the optional config file. A
// missing file is fine (defaults apply); a malformed one is not.
func LoadConfig(configFilePath string) {
	setViperDefaults()

	viper.SetConfigFile(configFilePath)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			slog.Info("no config file found", "configFilePath", configFilePath)
		} else {
			slog.Error("error during config read", "err", err)
			panic(err)
		}
	}
}
