package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownKey is returned when the settings document contains a key that is not recognized.
	ErrUnknownKey = zerr.New("unknown configuration key")

	// ErrInvalidEnum is returned when an enumerated setting holds an unrecognized value.
	ErrInvalidEnum = zerr.New("invalid value for enumerated setting")

	// ErrMissingField is returned when a required setting is absent.
	ErrMissingField = zerr.New("missing required setting")

	// ErrInvalidValue is returned when a numeric setting is out of its valid range.
	ErrInvalidValue = zerr.New("setting out of range")

	// ErrConflictingOptions is returned when two settings cannot be combined.
	ErrConflictingOptions = zerr.New("conflicting settings")

	// ErrDuplicateTask is returned when two tasks share the same name.
	ErrDuplicateTask = zerr.New("duplicate task name")

	// ErrReservedTaskName is returned when a task uses a name reserved for auxiliary tasks.
	ErrReservedTaskName = zerr.New("task name is reserved")

	// ErrUnknownTask is returned when a setting references a task that is not defined.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrNoTargetTask is returned when no task is marked as target.
	ErrNoTargetTask = zerr.New("no task is marked as target")

	// ErrMultipleTargetTasks is returned when more than one task is marked as target.
	ErrMultipleTargetTasks = zerr.New("more than one task is marked as target")

	// ErrNoInputFiles is returned when an input pattern matches no file.
	ErrNoInputFiles = zerr.New("no input files matched")

	// ErrCorpusOpenFailed is returned when a corpus file cannot be opened.
	ErrCorpusOpenFailed = zerr.New("failed to open corpus file")

	// ErrCorpusReadFailed is returned when reading a corpus file fails.
	ErrCorpusReadFailed = zerr.New("failed to read corpus file")

	// ErrMalformedRow is returned when a corpus row cannot be parsed.
	ErrMalformedRow = zerr.New("malformed row")

	// ErrFieldCountMismatch is returned when a corpus row has a different number of fields than the header.
	ErrFieldCountMismatch = zerr.New("field count does not match header")

	// ErrEmptyCorpus is returned when segmentation produced no training instance.
	ErrEmptyCorpus = zerr.New("corpus produced no instances")

	// ErrSourceNotRestartable is returned when a one-shot instance source is opened a second time.
	ErrSourceNotRestartable = zerr.New("instance source cannot be re-read")

	// ErrStoreCreateFailed is returned when the artifact store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create artifact store directory")

	// ErrStoreReadFailed is returned when a stored artifact cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read artifact")

	// ErrStoreUnmarshalFailed is returned when a stored artifact cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal artifact")

	// ErrStoreMarshalFailed is returned when an artifact cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal artifact")

	// ErrStoreWriteFailed is returned when an artifact cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write artifact")

	// ErrFileOpenFailed is returned when a file cannot be opened for hashing.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrEmptyLoss is returned when the model reports no loss for a batch.
	ErrEmptyLoss = zerr.New("got empty loss, no tasks defined")

	// ErrModelFailed is returned when the model collaborator fails.
	ErrModelFailed = zerr.New("model call failed")

	// ErrOptimizerFailed is returned when the optimizer collaborator fails.
	ErrOptimizerFailed = zerr.New("optimizer step failed")

	// ErrInvalidSnapshot is returned when model parameters cannot be restored from a snapshot.
	ErrInvalidSnapshot = zerr.New("invalid model snapshot")

	// ErrTrainingFailed is returned when the training run fails.
	ErrTrainingFailed = zerr.New("training failed")
)
