package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/logexec/internal/config"
	"github.com/Aman-CERP/logexec/internal/logging"
)

// loggerFlags are the initializer flags shared by run and demo.
type loggerFlags struct {
	configPath   string
	logFile      string
	consoleLevel string
	fileLevel    string
	noConsole    bool
}

func (f *loggerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default: ./logexec.yaml)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "Run log path (default: ./logs/<script>_<timestamp>.log)")
	cmd.Flags().StringVar(&f.consoleLevel, "console-level", "", "Console threshold (debug|info|warning|error|critical)")
	cmd.Flags().StringVar(&f.fileLevel, "file-level", "", "File threshold (debug|info|warning|error|critical)")
	cmd.Flags().BoolVar(&f.noConsole, "no-console", false, "Do not log to the console")
}

// load reads the configuration and applies the flags the user set.
func (f *loggerFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(".", f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("console-level") {
		cfg.ConsoleLevel = f.consoleLevel
	}
	if flags.Changed("file-level") {
		cfg.FileLevel = f.fileLevel
	}
	if f.noConsole {
		cfg.SendToConsole = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is one initialized run: a private registry and its configured logger.
type session struct {
	registry *logging.Registry
	logger   *logging.Logger
	advise   logging.AdvisoryHandler
}

// openSession initializes the run log. The console sink, the root logger and
// advisories all write to the command's stderr.
func openSession(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	stderr := cmd.ErrOrStderr()
	reg := logging.NewRegistry(stderr)
	advise := logging.WriterAdvisories(stderr)

	in := logging.NewInitializer(reg)
	in.Name = cfg.LoggerName
	in.Dir = cfg.LogDir
	in.Stdout = cmd.OutOrStdout()
	in.Console = stderr
	in.Advisories = advise

	logger, err := in.Init(cfg.Options())
	if err != nil {
		_ = reg.Close()
		return nil, err
	}
	return &session{registry: reg, logger: logger, advise: advise}, nil
}

func (s *session) Close() error {
	return s.registry.Close()
}
