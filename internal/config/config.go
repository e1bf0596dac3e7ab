package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level"   env:"LOG_LEVEL"   env-default:"info"`
	HTTPPort   string `yaml:"http-port"   env:"HTTP_PORT"   env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8001"`
	Redis      Redis  `yaml:"redis"`
	Lobby      Lobby  `yaml:"lobby"`
	Socket     Socket `yaml:"socket"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Lobby controls the join keys handed out to hosts.
type Lobby struct {
	JoinKeyTTL   time.Duration `yaml:"join-key-ttl"   env:"JOIN_KEY_TTL"   env-default:"30m"`
	JoinKeyBytes int           `yaml:"join-key-bytes" env:"JOIN_KEY_BYTES" env-default:"3"`
}

type Socket struct {
	WriteWait      time.Duration `yaml:"write-wait"       env:"SOCKET_WRITE_WAIT"       env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait"        env:"SOCKET_PONG_WAIT"        env-default:"60s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"SOCKET_MAX_MESSAGE_SIZE" env-default:"512"`
}

// Load - reads the file at path, falling back to the environment when it does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}

		return config, nil
	}

	if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
