// Package config loads crew settings from defaults, an optional TOML file
// and CREW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "CREW"
	homeEnv    = "CREW_HOME"
	defaultDir = ".crew"
)

const (
	KeyStateDir            = "state.dir"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
	KeyOrchestratorSession = "orchestrator.session"
	KeyMailboxMaxQueue     = "mailbox.max_queue"
	KeyMailboxMaxHistory   = "mailbox.max_history"
	KeyMailboxPersistDelay = "mailbox.persist_delay"
	KeyMailboxMaxRetries   = "mailbox.max_delivery_retries"
	KeyExemptRoles         = "lifecycle.exempt_roles"
	KeyRehydrateTimeout    = "lifecycle.rehydrate_timeout"
	KeyRehydratePoll       = "lifecycle.rehydrate_poll"
	KeyMonitorMaxJobs      = "monitor.max_concurrent"
	KeyMonitorPoll         = "monitor.poll_interval"
	KeyMonitorTimeout      = "monitor.timeout"
	KeyMonitorMaxAttempts  = "monitor.max_attempts"
	KeyMonitorBackoff      = "monitor.retry_backoff"
	KeyMonitorInterrupt    = "monitor.interrupt_delay"
	KeyMonitorPatterns     = "monitor.worker_patterns"
	KeyTmuxBinary          = "tmux.binary"
	KeyTmuxAgentCommand    = "tmux.agent_command"
	KeyTmuxResumeFlag      = "tmux.resume_flag"
	KeyTmuxWorkdir         = "tmux.workdir"
	KeyRosterPath          = "roster.path"
	KeyTokensPath          = "tokens.path"
	KeySuspendedPath       = "suspended.path"
	KeyMailboxPath         = "mailbox.path"
	KeyWorkspaceDir        = "workspace.dir"
)

type Config struct {
	HomeDir  string
	StateDir string

	LogLevel  string
	LogFormat string

	OrchestratorSession string

	Mailbox   MailboxConfig
	Lifecycle LifecycleConfig
	Monitor   MonitorConfig
	Tmux      TmuxConfig

	RosterPath    string
	TokensPath    string
	SuspendedPath string
	MailboxPath   string
	WorkspaceDir  string
}

type MailboxConfig struct {
	MaxQueue           int
	MaxHistory         int
	PersistDelay       time.Duration
	MaxDeliveryRetries int
}

type LifecycleConfig struct {
	ExemptRoles      []string
	RehydrateTimeout time.Duration
	RehydratePoll    time.Duration
}

type MonitorConfig struct {
	MaxConcurrent  int
	PollInterval   time.Duration
	Timeout        time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration
	InterruptDelay time.Duration
	WorkerPatterns []string
}

type TmuxConfig struct {
	Binary       string
	AgentCommand string
	ResumeFlag   string
	Workdir      string
}

// Load resolves the crew home, reads config.toml when present and applies
// environment overrides. A nil viper instance gets a fresh one.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	home, err := resolveHome()
	if err != nil {
		return nil, err
	}

	setDefaults(v, home)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(home)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	stateDir, err := absPath(v.GetString(KeyStateDir))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HomeDir:             home,
		StateDir:            stateDir,
		LogLevel:            v.GetString(KeyLogLevel),
		LogFormat:           v.GetString(KeyLogFormat),
		OrchestratorSession: v.GetString(KeyOrchestratorSession),
		Mailbox: MailboxConfig{
			MaxQueue:           v.GetInt(KeyMailboxMaxQueue),
			MaxHistory:         v.GetInt(KeyMailboxMaxHistory),
			PersistDelay:       v.GetDuration(KeyMailboxPersistDelay),
			MaxDeliveryRetries: v.GetInt(KeyMailboxMaxRetries),
		},
		Lifecycle: LifecycleConfig{
			ExemptRoles:      v.GetStringSlice(KeyExemptRoles),
			RehydrateTimeout: v.GetDuration(KeyRehydrateTimeout),
			RehydratePoll:    v.GetDuration(KeyRehydratePoll),
		},
		Monitor: MonitorConfig{
			MaxConcurrent:  v.GetInt(KeyMonitorMaxJobs),
			PollInterval:   v.GetDuration(KeyMonitorPoll),
			Timeout:        v.GetDuration(KeyMonitorTimeout),
			MaxAttempts:    v.GetInt(KeyMonitorMaxAttempts),
			RetryBackoff:   v.GetDuration(KeyMonitorBackoff),
			InterruptDelay: v.GetDuration(KeyMonitorInterrupt),
			WorkerPatterns: v.GetStringSlice(KeyMonitorPatterns),
		},
		Tmux: TmuxConfig{
			Binary:       v.GetString(KeyTmuxBinary),
			AgentCommand: v.GetString(KeyTmuxAgentCommand),
			ResumeFlag:   v.GetString(KeyTmuxResumeFlag),
			Workdir:      v.GetString(KeyTmuxWorkdir),
		},
	}

	cfg.RosterPath = stateFile(v, KeyRosterPath, stateDir, "teams.yaml")
	cfg.TokensPath = stateFile(v, KeyTokensPath, stateDir, "continuation.toml")
	cfg.SuspendedPath = stateFile(v, KeySuspendedPath, stateDir, "suspended.toml")
	cfg.MailboxPath = stateFile(v, KeyMailboxPath, stateDir, "mailbox.toml")
	cfg.WorkspaceDir = stateFile(v, KeyWorkspaceDir, stateDir, "workspaces")

	// Repositories resolve their files through these keys.
	v.Set(KeyRosterPath, cfg.RosterPath)
	v.Set(KeyTokensPath, cfg.TokensPath)
	v.Set(KeySuspendedPath, cfg.SuspendedPath)
	v.Set(KeyMailboxPath, cfg.MailboxPath)
	v.Set(KeyWorkspaceDir, cfg.WorkspaceDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mailbox.MaxQueue <= 0 {
		return fmt.Errorf("%s must be positive", KeyMailboxMaxQueue)
	}
	if c.Mailbox.MaxHistory < 0 {
		return fmt.Errorf("%s must not be negative", KeyMailboxMaxHistory)
	}
	if c.Lifecycle.RehydratePoll <= 0 || c.Lifecycle.RehydrateTimeout <= 0 {
		return fmt.Errorf("lifecycle rehydrate poll and timeout must be positive")
	}
	if c.Monitor.MaxConcurrent <= 0 {
		return fmt.Errorf("%s must be positive", KeyMonitorMaxJobs)
	}
	if c.Monitor.PollInterval <= 0 || c.Monitor.Timeout <= 0 {
		return fmt.Errorf("monitor poll interval and timeout must be positive")
	}
	if strings.TrimSpace(c.OrchestratorSession) == "" {
		return fmt.Errorf("%s is required", KeyOrchestratorSession)
	}

	return nil
}

func setDefaults(v *viper.Viper, home string) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = home
	}

	v.SetDefault(KeyStateDir, filepath.Join(home, "state"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOrchestratorSession, "crew-orchestrator")
	v.SetDefault(KeyMailboxMaxQueue, 100)
	v.SetDefault(KeyMailboxMaxHistory, 50)
	v.SetDefault(KeyMailboxPersistDelay, time.Duration(0))
	v.SetDefault(KeyMailboxMaxRetries, 3)
	v.SetDefault(KeyExemptRoles, []string{"orchestrator"})
	v.SetDefault(KeyRehydrateTimeout, 60*time.Second)
	v.SetDefault(KeyRehydratePoll, 2*time.Second)
	v.SetDefault(KeyMonitorMaxJobs, 10)
	v.SetDefault(KeyMonitorPoll, 5*time.Second)
	v.SetDefault(KeyMonitorTimeout, 120*time.Second)
	v.SetDefault(KeyMonitorMaxAttempts, 2)
	v.SetDefault(KeyMonitorBackoff, 3*time.Second)
	v.SetDefault(KeyMonitorInterrupt, 500*time.Millisecond)
	v.SetDefault(KeyMonitorPatterns, []string{"-member-", "agent-"})
	v.SetDefault(KeyTmuxBinary, "tmux")
	v.SetDefault(KeyTmuxAgentCommand, "claude")
	v.SetDefault(KeyTmuxResumeFlag, "--resume")
	v.SetDefault(KeyTmuxWorkdir, cwd)
}

func resolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(homeEnv)); home != "" {
		return absPath(home)
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(userHome, defaultDir), nil
}

func stateFile(v *viper.Viper, key, stateDir, name string) string {
	if path := strings.TrimSpace(v.GetString(key)); path != "" {
		if abs, err := absPath(path); err == nil {
			return abs
		}
	}
	return filepath.Join(stateDir, name)
}

func absPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
