package config

import "gopkg.in/yaml.v3"

// SettingsDTO is the settings document as written by users.
// Pointer fields tell an absent key from a zero value.
type SettingsDTO struct {
	Verbose   *bool   `yaml:"verbose"`
	Device    *string `yaml:"device"`
	ModelName *string `yaml:"modelname"`
	ModelPath *string `yaml:"modelpath"`
	Seed      *int64  `yaml:"seed"`

	InputPath     *string    `yaml:"input_path"`
	TestPath      *string    `yaml:"test_path"`
	DevPath       *string    `yaml:"dev_path"`
	DevSplit      *float64   `yaml:"dev_split"`
	BreaklineType *string    `yaml:"breakline_type"`
	BreaklineRef  *string    `yaml:"breakline_ref"`
	BreaklineData *yaml.Node `yaml:"breakline_data"`
	MaxSentLen    *int       `yaml:"max_sent_len"`
	MaxSents      *int       `yaml:"max_sents"`
	CharMaxSize   *int       `yaml:"char_max_size"`
	WordMaxSize   *int       `yaml:"word_max_size"`
	CharMinFreq   *int       `yaml:"char_min_freq"`
	WordMinFreq   *int       `yaml:"word_min_freq"`
	IncludeSelf   *bool      `yaml:"include_self"`
	Header        *bool      `yaml:"header"`
	Sep           *string    `yaml:"sep"`
	TasksOrder    []string   `yaml:"tasks_order"`
	OnDataError   *string    `yaml:"on_data_error"`
	CacheDataset  *bool      `yaml:"cache_dataset"`

	Tasks []TaskDTO `yaml:"tasks"`

	Patience   *int         `yaml:"patience"`
	Factor     *float64     `yaml:"factor"`
	Threshold  *float64     `yaml:"threshold"`
	MinWeight  *float64     `yaml:"min_weight"`
	IncludeLM  *bool        `yaml:"include_lm"`
	LMSchedule *ScheduleDTO `yaml:"lm_schedule"`

	BufferSize               *int     `yaml:"buffer_size"`
	MinimizePad              *bool    `yaml:"minimize_pad"`
	Dropout                  *float64 `yaml:"dropout"`
	WordDropout              *float64 `yaml:"word_dropout"`
	Epochs                   *int     `yaml:"epochs"`
	BatchSize                *int     `yaml:"batch_size"`
	Shuffle                  *bool    `yaml:"shuffle"`
	Optimizer                *string  `yaml:"optimizer"`
	LR                       *float64 `yaml:"lr"`
	LRFactor                 *float64 `yaml:"lr_factor"`
	LRPatience               *int     `yaml:"lr_patience"`
	MinLR                    *float64 `yaml:"min_lr"`
	LRScheduler              *string  `yaml:"lr_scheduler"`
	LRDelayed                *int     `yaml:"lr_delayed"`
	LRTMax                   *int     `yaml:"lr_T_max"`
	LRT0                     *int     `yaml:"lr_T_0"`
	ClipNorm                 *float64 `yaml:"clip_norm"`
	ReportFreq               *int     `yaml:"report_freq"`
	ChecksPerEpoch           *int     `yaml:"checks_per_epoch"`
	PretrainEmbeddings       *bool    `yaml:"pretrain_embeddings"`
	LoadPretrainedEmbeddings *string  `yaml:"load_pretrained_embeddings"`

	WembDim    *int    `yaml:"wemb_dim"`
	CembDim    *int    `yaml:"cemb_dim"`
	CembType   *string `yaml:"cemb_type"`
	MergeType  *string `yaml:"merge_type"`
	HiddenSize *int    `yaml:"hidden_size"`
	NumLayers  *int    `yaml:"num_layers"`
	Cell       *string `yaml:"cell"`
}

// TaskDTO is one entry of the tasks list.
type TaskDTO struct {
	Name     string           `yaml:"name"`
	Target   *bool            `yaml:"target"`
	Settings *TaskSettingsDTO `yaml:"settings"`
	Schedule *ScheduleDTO     `yaml:"schedule"`
	Default  *string          `yaml:"default"`
}

// TaskSettingsDTO holds the encoder settings of a task.
type TaskSettingsDTO struct {
	Level   *string `yaml:"level"`
	BOS     *bool   `yaml:"bos"`
	EOS     *bool   `yaml:"eos"`
	Target  *bool   `yaml:"target"`
	MaxSize *int    `yaml:"max_size"`
	MinFreq *int    `yaml:"min_freq"`
}

// ScheduleDTO holds the schedule overrides of a task.
type ScheduleDTO struct {
	Target    *bool    `yaml:"target"`
	Mode      *string  `yaml:"mode"`
	Patience  *int     `yaml:"patience"`
	Threshold *float64 `yaml:"threshold"`
	Factor    *float64 `yaml:"factor"`
	MinWeight *float64 `yaml:"min_weight"`
	Weight    *float64 `yaml:"weight"`
}
