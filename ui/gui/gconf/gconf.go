package gconf

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	SquareSize int    `json:"square_size"` // px per board cell
	Border     int    `json:"border"`      // px around the grid
	Flipped    bool   `json:"flipped"`     // black at the bottom
	FeedURL    string `json:"feed_url"`    // websocket analysis feed
	MaxPlies   int    `json:"max_plies"`   // arrows per variation
	Debug      bool   `json:"debug"`       // true/false
}

func defaultConfig() Config {
	return Config{
		SquareSize: 80,
		Border:     16,
		Flipped:    false,
		FeedURL:    "",
		MaxPlies:   2,
		Debug:      false,
	}
}

func NewConfig(file string) (*Config, error) {
	if file == "" {
		file = "liveboard.json"
	}

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := defaultConfig()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	dec := json.NewDecoder(conf)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %s", err)
	}
	correctableConfig(&c)

	return &c, nil
}

func (c *Config) Save(file string) error {
	if file == "" {
		file = "liveboard.json"
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.SquareSize < 24 || c.SquareSize > 256 {
		c.SquareSize = def.SquareSize
	}
	if c.Border < 0 {
		c.Border = def.Border
	}
	if c.MaxPlies < 1 {
		c.MaxPlies = def.MaxPlies
	}
}
