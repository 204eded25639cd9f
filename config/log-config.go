package config

type LogConfig struct {
	Level string `json:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level: "info",
	}
}
