package config

import (
	"fmt"
	"slices"
	"strconv"

	"go.trai.ch/tagger/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// keyError names the offending key in both the message and the metadata.
func keyError(sentinel error, key string, value any) error {
	err := zerr.Wrap(sentinel, "setting "+key)
	err = zerr.With(err, "key", key)
	if value != nil {
		err = zerr.With(err, "value", value)
	}
	return err
}

func checkEnum[T ~string](key string, value T, allowed ...T) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return keyError(domain.ErrInvalidEnum, key, string(value))
}

func checkMinInt(key string, value, minValue int) error {
	if value < minValue {
		return keyError(domain.ErrInvalidValue, key, value)
	}
	return nil
}

// checkRange validates lo <= value <= hi, or lo <= value < hi when openHigh is set.
func checkRange(key string, value, lo, hi float64, openHigh bool) error {
	if value < lo || value > hi || (openHigh && value == hi) {
		return keyError(domain.ErrInvalidValue, key, value)
	}
	return nil
}

func checkPositive(key string, value float64) error {
	if value <= 0 {
		return keyError(domain.ErrInvalidValue, key, value)
	}
	return nil
}

// breaklineData interprets breakline_data according to the breakline type.
func breaklineData(node *yaml.Node, typ domain.BreaklineType) (domain.Breakline, error) {
	bl := domain.Breakline{Type: typ}

	raw := DefaultBreaklineData
	if typ == domain.BreaklineLength {
		raw = strconv.Itoa(DefaultMaxSentLen)
	}
	if node != nil {
		if node.Kind != yaml.ScalarNode {
			return bl, keyError(domain.ErrInvalidValue, "breakline_data", node.Tag)
		}
		raw = node.Value
	}

	switch typ {
	case domain.BreaklineLength:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return bl, keyError(domain.ErrInvalidValue, "breakline_data", raw)
		}
		bl.Every = n
	default:
		if raw == "" {
			return bl, keyError(domain.ErrMissingField, "breakline_data", nil)
		}
		bl.Symbol = raw
	}
	return bl, nil
}

func validateData(d *domain.DataSettings, taskNames []string) error {
	if d.InputPath == "" {
		return keyError(domain.ErrMissingField, "input_path", nil)
	}
	if err := checkRange("dev_split", d.DevSplit, 0, 1, true); err != nil {
		return err
	}
	if d.DevPath != "" && d.DevSplit > 0 {
		return keyError(domain.ErrConflictingOptions, "dev_split", fmt.Sprintf("dev_path=%s dev_split=%g", d.DevPath, d.DevSplit))
	}
	if d.Breakline.Ref != domain.BreaklineInput && !slices.Contains(taskNames, d.Breakline.Ref) {
		return keyError(domain.ErrUnknownTask, "breakline_ref", d.Breakline.Ref)
	}

	ints := []struct {
		key   string
		value int
		min   int
	}{
		{"max_sent_len", d.MaxSentLen, 1},
		{"max_sents", d.MaxSents, 0},
		{"char_max_size", d.CharMaxSize, 0},
		{"word_max_size", d.WordMaxSize, 0},
		{"char_min_freq", d.CharMinFreq, 1},
		{"word_min_freq", d.WordMinFreq, 1},
	}
	for _, c := range ints {
		if err := checkMinInt(c.key, c.value, c.min); err != nil {
			return err
		}
	}

	if d.Sep == "" {
		return keyError(domain.ErrMissingField, "sep", nil)
	}
	if !d.Header && len(d.TasksOrder) == 0 {
		return keyError(domain.ErrMissingField, "tasks_order", nil)
	}
	for _, name := range d.TasksOrder {
		if !slices.Contains(taskNames, name) {
			return keyError(domain.ErrUnknownTask, "tasks_order", name)
		}
	}
	return checkEnum("on_data_error", d.OnDataError, domain.DataErrorAbort, domain.DataErrorSkip)
}

func validateSchedule(prefix string, s domain.ScheduleSpec) error {
	if err := checkEnum(prefix+".mode", s.Mode, domain.ModeMax, domain.ModeMin); err != nil {
		return err
	}
	if s.Patience != nil {
		if err := checkMinInt(prefix+".patience", *s.Patience, 1); err != nil {
			return err
		}
	}
	if s.Threshold != nil && *s.Threshold < 0 {
		return keyError(domain.ErrInvalidValue, prefix+".threshold", *s.Threshold)
	}
	if s.Factor != nil {
		if err := checkPositive(prefix+".factor", *s.Factor); err != nil {
			return err
		}
		if err := checkRange(prefix+".factor", *s.Factor, 0, 1, false); err != nil {
			return err
		}
	}
	if s.MinWeight != nil {
		if err := checkRange(prefix+".min_weight", *s.MinWeight, 0, 1, false); err != nil {
			return err
		}
	}
	if s.Weight != nil {
		if err := checkPositive(prefix+".weight", *s.Weight); err != nil {
			return err
		}
	}
	return nil
}

// validateWeight requires min_weight <= weight <= 1, with min_weight inherited from
// the global schedule when the task does not set it.
func validateWeight(prefix string, s domain.ScheduleSpec, globalMin float64) error {
	if s.Weight == nil {
		return nil
	}
	floor := globalMin
	if s.MinWeight != nil {
		floor = *s.MinWeight
	}
	return checkRange(prefix+".weight", *s.Weight, floor, 1, false)
}

func validateTasks(tasks []domain.Task, defaults domain.ScheduleDefaults) error {
	if len(tasks) == 0 {
		return keyError(domain.ErrMissingField, "tasks", nil)
	}

	seen := make(map[string]bool, len(tasks))
	var targets []string
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Name == "" {
			return keyError(domain.ErrMissingField, prefix+".name", nil)
		}
		if domain.ReservedTaskName(t.Name) {
			return keyError(domain.ErrReservedTaskName, prefix+".name", t.Name)
		}
		if seen[t.Name] {
			return keyError(domain.ErrDuplicateTask, prefix+".name", t.Name)
		}
		seen[t.Name] = true

		if err := checkEnum(prefix+".settings.level", t.Level, domain.LevelToken, domain.LevelChar); err != nil {
			return err
		}
		if err := checkMinInt(prefix+".settings.max_size", t.MaxSize, 0); err != nil {
			return err
		}
		if err := checkMinInt(prefix+".settings.min_freq", t.MinFreq, 1); err != nil {
			return err
		}
		if err := validateSchedule(prefix+".schedule", t.Schedule); err != nil {
			return err
		}
		if err := validateWeight(prefix+".schedule", t.Schedule, defaults.MinWeight); err != nil {
			return err
		}
		if t.IsTarget() {
			targets = append(targets, t.Name)
		}
	}

	switch len(targets) {
	case 0:
		return keyError(domain.ErrNoTargetTask, "tasks", nil)
	case 1:
		return nil
	default:
		return keyError(domain.ErrMultipleTargetTasks, "tasks", targets)
	}
}

func validateGlobalSchedule(s domain.ScheduleDefaults) error {
	if err := checkMinInt("patience", s.Patience, 1); err != nil {
		return err
	}
	if err := checkPositive("factor", s.Factor); err != nil {
		return err
	}
	if err := checkRange("factor", s.Factor, 0, 1, false); err != nil {
		return err
	}
	if s.Threshold < 0 {
		return keyError(domain.ErrInvalidValue, "threshold", s.Threshold)
	}
	return checkRange("min_weight", s.MinWeight, 0, 1, false)
}

func validateTraining(t *domain.TrainingSettings) error {
	ints := []struct {
		key   string
		value int
		min   int
	}{
		{"buffer_size", t.BufferSize, 1},
		{"epochs", t.Epochs, 1},
		{"batch_size", t.BatchSize, 1},
		{"lr_patience", t.LRPatience, 0},
		{"lr_delayed", t.LRDelayed, 0},
		{"lr_T_max", t.LRTMax, 1},
		{"lr_T_0", t.LRT0, 1},
		{"report_freq", t.ReportFreq, 1},
		{"checks_per_epoch", t.ChecksPerEpoch, 0},
	}
	for _, c := range ints {
		if err := checkMinInt(c.key, c.value, c.min); err != nil {
			return err
		}
	}

	if err := checkRange("dropout", t.Dropout, 0, 1, true); err != nil {
		return err
	}
	if err := checkRange("word_dropout", t.WordDropout, 0, 1, true); err != nil {
		return err
	}
	if err := checkPositive("lr", t.LR); err != nil {
		return err
	}
	if err := checkPositive("lr_factor", t.LRFactor); err != nil {
		return err
	}
	if err := checkRange("lr_factor", t.LRFactor, 0, 1, true); err != nil {
		return err
	}
	if t.MinLR < 0 {
		return keyError(domain.ErrInvalidValue, "min_lr", t.MinLR)
	}
	if t.ClipNorm < 0 {
		return keyError(domain.ErrInvalidValue, "clip_norm", t.ClipNorm)
	}
	if t.Optimizer == "" {
		return keyError(domain.ErrMissingField, "optimizer", nil)
	}
	return checkEnum("lr_scheduler", t.LRScheduler,
		domain.LRReduceOnPlateau, domain.LRCosineAnnealing, domain.LRCosineWarmRestarts)
}

func validateModel(m *domain.ModelSettings) error {
	if err := checkEnum("cemb_type", m.CembType, domain.CembRNN, domain.CembCNN); err != nil {
		return err
	}
	if err := checkEnum("merge_type", m.MergeType, domain.MergeMixer, domain.MergeConcat); err != nil {
		return err
	}
	if err := checkEnum("cell", m.Cell, domain.CellLSTM, domain.CellGRU); err != nil {
		return err
	}
	if err := checkMinInt("wemb_dim", m.WembDim, 0); err != nil {
		return err
	}
	if err := checkMinInt("cemb_dim", m.CembDim, 0); err != nil {
		return err
	}
	if err := checkMinInt("hidden_size", m.HiddenSize, 0); err != nil {
		return err
	}
	return checkMinInt("num_layers", m.NumLayers, 1)
}

// validate checks every setting except breakline_type, which is checked while decoding.
// The first offending key is reported.
func validate(s *domain.Settings) error {
	if !domain.ValidDevice(s.Device) {
		return keyError(domain.ErrInvalidEnum, "device", s.Device)
	}
	if err := validateGlobalSchedule(s.Schedule); err != nil {
		return err
	}
	if err := validateTasks(s.Tasks, s.Schedule); err != nil {
		return err
	}
	if err := validateData(&s.Data, s.TaskNames()); err != nil {
		return err
	}
	if err := validateSchedule("lm_schedule", s.LMSchedule); err != nil {
		return err
	}
	if s.IncludeLM {
		if err := validateWeight("lm_schedule", s.LMSchedule, s.Schedule.MinWeight); err != nil {
			return err
		}
	}
	if err := validateTraining(&s.Training); err != nil {
		return err
	}
	return validateModel(&s.Model)
}
