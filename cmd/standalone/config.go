package standalone

import (
	"strings"
	"time"

	"github.com/Kirov7/kraglin"
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server/resp/options"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flag name -> config key
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"pidfile":   "server.pidfile",
	"rtimeout":  "server.readTimeout",
	"wtimeout":  "server.writeTimeout",
	"backend":   "engine.backend",
	"shards":    "engine.shards",
	"itype":     "engine.indexType",
	"log-level": "log.level",
	"log-json":  "log.json",
	"metrics":   "metrics.addr",
}

func addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&configFile, "cpath", "f", "", "Path of the configuration file in yaml, json and toml format (optional)")
	flags.StringP("host", "H", public.DefaultListenHost, "Host to listen on")
	flags.IntP("port", "p", public.DefaultListenPort, "Port to listen on")
	flags.String("pidfile", "", "Pid file locked while the server runs (optional)")
	flags.Duration("rtimeout", 0, "Read deadline set when a connection opens (0 disables)")
	flags.Duration("wtimeout", 0, "Write deadline set when a connection opens (0 disables)")
	flags.StringP("backend", "b", "simple", "Backend type (simple/sharded)")
	flags.Int("shards", public.DefaultShardCount, "Number of lock shards for the sharded backend")
	flags.StringP("itype", "t", "btree", "Type of memory index (hashmap/btree/art)")
	flags.String("log-level", "info", "Log level (trace/debug/info/warn/error/off)")
	flags.Bool("log-json", false, "Log in JSON")
	flags.String("metrics", "", "Address serving prometheus /metrics, e.g. :9121 (optional)")
}

// newViper layers flags over env over the config file. LISTEN_HOST and
// LISTEN_PORT are honoured next to the KRAGLIN_ prefixed names.
func newViper(cmd *cobra.Command, path string) (*viper.Viper, error) {
	v := viper.New()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", name)
		}
	}
	v.SetEnvPrefix("KRAGLIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.host", "KRAGLIN_SERVER_HOST", "LISTEN_HOST")
	_ = v.BindEnv("server.port", "KRAGLIN_SERVER_PORT", "LISTEN_PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read configuration file %s, please check whether the path is correct", path)
		}
	}
	return v, nil
}

func loadOptions(v *viper.Viper) (options.KraglinOptions, logger.Config, error) {
	opt := options.DefaultOptions()
	opt.Host = v.GetString("server.host")
	opt.Port = v.GetInt("server.port")
	opt.PidFile = v.GetString("server.pidfile")
	opt.ReadTimeout = v.GetDuration("server.readTimeout")
	opt.WriteTimeout = v.GetDuration("server.writeTimeout")
	opt.MetricsAddr = v.GetString("metrics.addr")

	backend, ok := kraglin.ParseBackendType(strings.ToLower(v.GetString("engine.backend")))
	if !ok {
		return opt, logger.Config{}, errors.Errorf("unknown backend %q", v.GetString("engine.backend"))
	}
	indexType, ok := meta.ParseMemTableType(strings.ToLower(v.GetString("engine.indexType")))
	if !ok {
		return opt, logger.Config{}, errors.Errorf("unknown index type %q", v.GetString("engine.indexType"))
	}
	opt.Engine = kraglin.Options{
		Backend:      backend,
		Shards:       v.GetInt("engine.shards"),
		MemTableType: indexType,
	}
	if opt.Port < 0 || opt.Port > 65535 {
		return opt, logger.Config{}, errors.Errorf("invalid port %d", opt.Port)
	}

	logCfg := logger.Config{
		Level: v.GetString("log.level"),
		JSON:  v.GetBool("log.json"),
	}
	return opt, logCfg, nil
}

const shutdownTimeout = 2 * time.Second
