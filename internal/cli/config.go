package cli

import (
	"os"
	"strconv"

	"github.com/happyhackingspace/wordalign"
	"github.com/joho/godotenv"
)

// envConfig holds flag defaults taken from the environment.
type envConfig struct {
	data       wordalign.DataConfig
	iterations int
	method     string
	meteorJar  string
	loaded     string // .env path that was read, if any
}

// loadEnv reads the optional env file into the process environment
// (existing variables win) and collects the WORDALIGN_* defaults.
func loadEnv(path string) envConfig {
	var loaded string
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err == nil {
			loaded = path
		}
	}

	data := wordalign.DefaultDataConfig()
	data.Folder = envString("WORDALIGN_DATA", data.Folder)
	data.Prefix = envString("WORDALIGN_PREFIX", data.Prefix)
	data.SourceExt = envString("WORDALIGN_SOURCE_EXT", data.SourceExt)
	data.TargetExt = envString("WORDALIGN_TARGET_EXT", data.TargetExt)
	data.AlignExt = envString("WORDALIGN_ALIGN_EXT", data.AlignExt)
	data.Sentences = envInt("WORDALIGN_SENTENCES", data.Sentences)

	return envConfig{
		data:       data,
		iterations: envInt("WORDALIGN_ITERATIONS", wordalign.DefaultTrainConfig().Iterations),
		method:     envString("WORDALIGN_METHOD", wordalign.DefaultTrainConfig().Method.String()),
		meteorJar:  envString("WORDALIGN_METEOR_JAR", "meteor-1.4/meteor-1.4.jar"),
		loaded:     loaded,
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
