package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "WEEKLYPLANNER_"

type Application struct {
	Server   Server   `koanf:"server"`
	Storage  Storage  `koanf:"storage"`
	Database Database `koanf:"db"`
	Redis    Redis    `koanf:"redis"`
	Backup   Backup   `koanf:"backup"`
	Week     Week     `koanf:"week"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Storage selects the slot backend holding the collection document.
type Storage struct {
	Engine string `koanf:"engine"` // file, sqlite, postgres, redis or memory
	Path   string `koanf:"path"`   // file or sqlite database path
	Key    string `koanf:"key"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Redis struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Pass string `koanf:"pass"`
	DB   int    `koanf:"db"`
}

type Backup struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

type Week struct {
	Template string `koanf:"template"` // TOML file with the default week content, empty for built-in
	Timezone string `koanf:"timezone"` // IANA name used to decide what "today" is
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Storage: Storage{
			Engine: "file",
			Path:   "data/weekly_planner_data.json",
			Key:    "weekly_planner_data",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "weeklyplanner",
			Pass:   "",
			Name:   "weeklyplanner",
			Schema: "public",
		},
		Redis: Redis{
			Host: "localhost",
			Port: 6379,
		},
		Backup: Backup{
			Enabled: true,
			Dir:     "data/backups",
		},
		Week: Week{
			Timezone: "Local",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
