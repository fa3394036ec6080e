package config

// RunConfiguration 一次 CLI 运行的最终参数（配置文件 + 命令行合并后）
type RunConfiguration struct {
	// 输入
	Files []string

	// 解析
	KeepUserReturnTypes bool
	Sentinel            byte
	Concurrency         int
	Solc                string // 版本号、"auto" 或空

	// 输出
	Format       string
	OutputDir    string
	PrintContent bool
	Selectors    bool

	// 系统相关
	Store   string
	Watch   bool
	Verbose bool
	LogFile bool
}

func DefaultRunConfiguration() RunConfiguration {
	return RunConfiguration{
		Sentinel:     '$',
		Concurrency:  4, // 默认并发数
		Format:       "json",
		PrintContent: true,
		Store:        "none",
	}
}

// RunConfigurationFrom 以配置文件内容作为命令行参数的默认值
func RunConfigurationFrom(c *AppConfig) RunConfiguration {
	rc := DefaultRunConfiguration()
	if c == nil {
		return rc
	}
	rc.KeepUserReturnTypes = c.Parser.KeepUserReturnTypes
	if c.Parser.Sentinel != "" {
		rc.Sentinel = c.Parser.Sentinel[0]
	}
	if c.Parser.Concurrency > 0 {
		rc.Concurrency = c.Parser.Concurrency
	}
	rc.Solc = c.Parser.Solc
	if c.Output.Format != "" {
		rc.Format = c.Output.Format
	}
	rc.OutputDir = c.Output.Dir
	rc.PrintContent = c.Output.PrintContent
	rc.Selectors = c.Output.WithSelectors
	if c.Database.Driver != "" {
		rc.Store = c.Database.Driver
	}
	rc.Verbose = c.Log.Verbose
	rc.LogFile = c.Log.Enabled
	return rc
}
