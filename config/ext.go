package config

import (
	"fmt"
	"strconv"
	"time"
)

type ExtMap map[string]any

type SerialPortExt ExtMap

func (e SerialPortExt) GetInt(key string, defaultValue int) (int, error) {
	v, ok := e[key]
	if !ok {
		return defaultValue, nil
	}

	switch value := v.(type) {
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		return int(value), nil
	case string:
		return strconv.Atoi(value)
	}

	return defaultValue, fmt.Errorf("%s: unsupported value %v", key, v)
}

func (e SerialPortExt) GetBaud(defaultValue int) (int, error) {
	return e.GetInt("baud", defaultValue)
}

// GetWarmup is how long to wait after opening the port before the device accepts frames.
func (e SerialPortExt) GetWarmup(defaultValue time.Duration) (time.Duration, error) {
	ms, err := e.GetInt("warmup_ms", -1)
	if err != nil {
		return defaultValue, err
	}
	if ms < 0 {
		return defaultValue, nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}
