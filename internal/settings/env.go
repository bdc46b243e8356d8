package settings

import (
	"os"
	"strconv"
)

const envKeyPrefix string = "RCLI"

const textFormatEnvKey string = envKeyPrefix + "_TEXT_FORMAT"
const httpPortEnvKey string = envKeyPrefix + "_HTTP_PORT"
const httpDirEnvKey string = envKeyPrefix + "_HTTP_DIR"
const signdListenEnvKey string = envKeyPrefix + "_SIGND_LISTEN"
const logLevelEnvKey string = envKeyPrefix + "_LOG_LEVEL"
const logFormatEnvKey string = envKeyPrefix + "_LOG_FORMAT"

func getStringFromEnv(envKey string) *string {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	return &val
}

func getIntFromEnv(envKey string) *int {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	int64Val, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return nil
	}
	intVal := int(int64Val)
	return &intVal
}

func loadSettingsFromEnv() *Settings {
	return &Settings{
		textFormat:  getStringFromEnv(textFormatEnvKey),
		httpPort:    getIntFromEnv(httpPortEnvKey),
		httpDir:     getStringFromEnv(httpDirEnvKey),
		signdListen: getStringFromEnv(signdListenEnvKey),
		logLevel:    getStringFromEnv(logLevelEnvKey),
		logFormat:   getStringFromEnv(logFormatEnvKey),
	}
}
