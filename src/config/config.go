package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Datasets DatasetsConfig `mapstructure:"datasets"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type SourceType string

const (
	XLSX SourceType = "XLSX"
	CSV  SourceType = "CSV"
)

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

// DatasetsConfig selects between the two export layouts: a single
// spreadsheet workbook, or a directory holding the three delimited files
// (fund, covenant and macro data).
type DatasetsConfig struct {
	Source       SourceType `mapstructure:"source"`
	WorkbookPath string     `mapstructure:"workbookPath"`
	SheetName    string     `mapstructure:"sheetName"`
	CSVDir       string     `mapstructure:"csvDir"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	LogToFile bool   `mapstructure:"logToFile"`
	FilePath  string `mapstructure:"filePath"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
