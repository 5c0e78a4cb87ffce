package config

const (
	defaultConfigPath      = "~/.config/mkvreorder/config.toml"
	projectConfigName      = "mkvreorder.toml"
	defaultSourceDir       = "Original"
	defaultDestDir         = "Modified"
	defaultLogDir          = "~/.local/share/mkvreorder/logs"
	defaultWorkers         = 4
	defaultExtension       = ".mkv"
	defaultAudioLanguage   = "jpn"
	defaultSubtitleLang    = "eng"
	defaultMKVMergeBinary  = "mkvmerge"
	defaultDiagnosticLimit = 200
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			DestDir:   defaultDestDir,
			LogDir:    defaultLogDir,
		},
		Batch: Batch{
			Workers:       defaultWorkers,
			SkipExisting:  true,
			Extension:     defaultExtension,
			RemovePartial: true,
		},
		Policy: Policy{
			AudioLanguage:             defaultAudioLanguage,
			SubtitleLanguage:          defaultSubtitleLang,
			PreferredSubtitleKeywords: []string{"full"},
			ExcludedSubtitleKeywords:  []string{"signs", "songs", "forced"},
		},
		MKVMerge: MKVMerge{
			Binary:          defaultMKVMergeBinary,
			DiagnosticLimit: defaultDiagnosticLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
