// Package config provides the settings loader for tagger.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/tagger/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML document.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the settings document at path, applies defaults and validates it.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	dto, err := readSettings(path)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	settings, err := toSettings(dto)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if err := validate(settings); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if settings.Data.IncludeSelf {
		settings.Tasks = append(settings.Tasks, domain.Task{
			Name:    domain.SelfTask,
			Level:   domain.LevelChar,
			BOS:     true,
			EOS:     true,
			MinFreq: 1,
			Default: domain.DefaultPolicy{Copy: true},
			Schedule: domain.ScheduleSpec{
				Mode: domain.ModeMax,
			},
		})
	}

	if settings.Training.PretrainEmbeddings || settings.Training.LoadPretrainedEmbeddings != "" {
		l.Logger.Warn("embedding pretraining settings are carried to the model but not applied by the trainer")
	}

	return settings, nil
}

func readSettings(path string) (*SettingsDTO, error) {
	// #nosec G304 -- path is provided by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	dto := &SettingsDTO{}
	if len(root.Content) == 0 {
		return dto, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrConfigParseFailed, "reason", "settings document must be a mapping")
	}
	if err := checkKnownKeys(doc); err != nil {
		return nil, err
	}
	if err := doc.Decode(dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return dto, nil
}

// yamlKeys lists the yaml keys declared on the struct type of v.
func yamlKeys(v any) map[string]bool {
	t := reflect.TypeOf(v)
	keys := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}

var (
	settingsKeys     = yamlKeys(SettingsDTO{})
	taskKeys         = yamlKeys(TaskDTO{})
	taskSettingsKeys = yamlKeys(TaskSettingsDTO{})
	scheduleKeys     = yamlKeys(ScheduleDTO{})
)

func checkMapping(node *yaml.Node, allowed map[string]bool, prefix string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !allowed[key] {
			return keyError(domain.ErrUnknownKey, prefix+key, nil)
		}
	}
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func checkKnownKeys(doc *yaml.Node) error {
	if err := checkMapping(doc, settingsKeys, ""); err != nil {
		return err
	}
	if lm := mappingValue(doc, "lm_schedule"); lm != nil {
		if err := checkMapping(lm, scheduleKeys, "lm_schedule."); err != nil {
			return err
		}
	}

	tasks := mappingValue(doc, "tasks")
	if tasks == nil || tasks.Kind != yaml.SequenceNode {
		return nil
	}
	for i, task := range tasks.Content {
		prefix := fmt.Sprintf("tasks[%d].", i)
		if err := checkMapping(task, taskKeys, prefix); err != nil {
			return err
		}
		if task.Kind != yaml.MappingNode {
			continue
		}
		if s := mappingValue(task, "settings"); s != nil {
			if err := checkMapping(s, taskSettingsKeys, prefix+"settings."); err != nil {
				return err
			}
		}
		if s := mappingValue(task, "schedule"); s != nil {
			if err := checkMapping(s, scheduleKeys, prefix+"schedule."); err != nil {
				return err
			}
		}
	}
	return nil
}

func toSchedule(dto *ScheduleDTO, mode domain.Mode) domain.ScheduleSpec {
	if dto == nil {
		return domain.ScheduleSpec{Mode: mode}
	}
	return domain.ScheduleSpec{
		Mode:      domain.Mode(strings.ToLower(valueOr(dto.Mode, string(mode)))),
		Patience:  dto.Patience,
		Threshold: dto.Threshold,
		Factor:    dto.Factor,
		MinWeight: dto.MinWeight,
		Weight:    dto.Weight,
	}
}

func toTask(dto *TaskDTO) domain.Task {
	settings := dto.Settings
	if settings == nil {
		settings = &TaskSettingsDTO{}
	}

	target := valueOr(dto.Target, false) || valueOr(settings.Target, false)
	if dto.Schedule != nil {
		target = target || valueOr(dto.Schedule.Target, false)
	}

	return domain.Task{
		Name:     dto.Name,
		Target:   target,
		Level:    domain.Level(valueOr(settings.Level, string(domain.LevelToken))),
		BOS:      valueOr(settings.BOS, false),
		EOS:      valueOr(settings.EOS, false),
		MaxSize:  valueOr(settings.MaxSize, 0),
		MinFreq:  valueOr(settings.MinFreq, DefaultMinFreq),
		Default:  domain.ParseDefaultPolicy(valueOr(dto.Default, "")),
		Schedule: toSchedule(dto.Schedule, domain.ModeMax),
	}
}

func toSettings(dto *SettingsDTO) (*domain.Settings, error) {
	blType := domain.BreaklineType(strings.ToUpper(valueOr(dto.BreaklineType, string(DefaultBreaklineType))))
	if err := checkEnum("breakline_type", blType, domain.BreaklineLength, domain.BreaklineFullstop); err != nil {
		return nil, err
	}
	breakline, err := breaklineData(dto.BreaklineData, blType)
	if err != nil {
		return nil, err
	}
	breakline.Ref = valueOr(dto.BreaklineRef, DefaultBreaklineRef)

	tasks := make([]domain.Task, len(dto.Tasks))
	for i := range dto.Tasks {
		tasks[i] = toTask(&dto.Tasks[i])
	}

	lm := toSchedule(dto.LMSchedule, domain.ModeMin)
	if lm.Patience == nil {
		lm.Patience = ptr(DefaultLMPatience)
	}
	if lm.Factor == nil {
		lm.Factor = ptr(DefaultLMFactor)
	}
	if lm.Weight == nil {
		lm.Weight = ptr(DefaultLMWeight)
	}

	return &domain.Settings{
		Verbose:   valueOr(dto.Verbose, false),
		Device:    valueOr(dto.Device, DefaultDevice),
		ModelName: valueOr(dto.ModelName, DefaultModelName),
		ModelPath: valueOr(dto.ModelPath, DefaultModelPath),
		Seed:      valueOr(dto.Seed, DefaultSeed),
		Data: domain.DataSettings{
			InputPath:    valueOr(dto.InputPath, ""),
			TestPath:     valueOr(dto.TestPath, ""),
			DevPath:      valueOr(dto.DevPath, ""),
			DevSplit:     valueOr(dto.DevSplit, 0),
			Breakline:    breakline,
			MaxSentLen:   valueOr(dto.MaxSentLen, DefaultMaxSentLen),
			MaxSents:     valueOr(dto.MaxSents, DefaultMaxSents),
			CharMaxSize:  valueOr(dto.CharMaxSize, DefaultCharMaxSize),
			WordMaxSize:  valueOr(dto.WordMaxSize, DefaultWordMaxSize),
			CharMinFreq:  valueOr(dto.CharMinFreq, DefaultMinFreq),
			WordMinFreq:  valueOr(dto.WordMinFreq, DefaultMinFreq),
			IncludeSelf:  valueOr(dto.IncludeSelf, false),
			Header:       valueOr(dto.Header, true),
			Sep:          valueOr(dto.Sep, DefaultSep),
			TasksOrder:   dto.TasksOrder,
			OnDataError:  domain.DataErrorPolicy(valueOr(dto.OnDataError, string(DefaultOnDataError))),
			CacheDataset: valueOr(dto.CacheDataset, false),
		},
		Tasks: tasks,
		Schedule: domain.ScheduleDefaults{
			Patience:  valueOr(dto.Patience, DefaultPatience),
			Factor:    valueOr(dto.Factor, DefaultFactor),
			Threshold: valueOr(dto.Threshold, DefaultThreshold),
			MinWeight: valueOr(dto.MinWeight, DefaultMinWeight),
		},
		IncludeLM:  valueOr(dto.IncludeLM, false),
		LMSchedule: lm,
		Training: domain.TrainingSettings{
			BufferSize:               valueOr(dto.BufferSize, DefaultBufferSize),
			MinimizePad:              valueOr(dto.MinimizePad, false),
			Dropout:                  valueOr(dto.Dropout, DefaultDropout),
			WordDropout:              valueOr(dto.WordDropout, 0),
			Epochs:                   valueOr(dto.Epochs, DefaultEpochs),
			BatchSize:                valueOr(dto.BatchSize, DefaultBatchSize),
			Shuffle:                  valueOr(dto.Shuffle, true),
			Optimizer:                valueOr(dto.Optimizer, DefaultOptimizer),
			LR:                       valueOr(dto.LR, DefaultLR),
			LRFactor:                 valueOr(dto.LRFactor, DefaultLRFactor),
			LRPatience:               valueOr(dto.LRPatience, DefaultLRPatience),
			MinLR:                    valueOr(dto.MinLR, DefaultMinLR),
			LRScheduler:              domain.LRScheduler(valueOr(dto.LRScheduler, string(DefaultLRScheduler))),
			LRDelayed:                valueOr(dto.LRDelayed, 0),
			LRTMax:                   valueOr(dto.LRTMax, DefaultLRTMax),
			LRT0:                     valueOr(dto.LRT0, DefaultLRT0),
			ClipNorm:                 valueOr(dto.ClipNorm, DefaultClipNorm),
			ReportFreq:               valueOr(dto.ReportFreq, DefaultReportFreq),
			ChecksPerEpoch:           valueOr(dto.ChecksPerEpoch, DefaultChecksPerEpoch),
			PretrainEmbeddings:       valueOr(dto.PretrainEmbeddings, false),
			LoadPretrainedEmbeddings: valueOr(dto.LoadPretrainedEmbeddings, ""),
		},
		Model: domain.ModelSettings{
			WembDim:    valueOr(dto.WembDim, 0),
			CembDim:    valueOr(dto.CembDim, DefaultCembDim),
			CembType:   domain.CembType(valueOr(dto.CembType, string(DefaultCembType))),
			MergeType:  domain.MergeType(valueOr(dto.MergeType, string(DefaultMergeType))),
			HiddenSize: valueOr(dto.HiddenSize, DefaultHiddenSize),
			NumLayers:  valueOr(dto.NumLayers, DefaultNumLayers),
			Cell:       domain.Cell(valueOr(dto.Cell, string(DefaultCell))),
		},
	}, nil
}
