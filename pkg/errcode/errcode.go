package errcode

import (
	"errors"

	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigFileError
	ConfigFiltersError
	ConfigCredentialsError
	ConfigDriverError

	// Source database errors
	SourceConnectionError
	SourceNotConnectedError
	SourceQueryError
	SourceTimeoutError

	// Schema mismatch errors
	SchemaMismatchError

	// Destination errors
	SinkOpenError
	SinkWriteError
	SinkCollectionError
	SinkOptimizeError
	SinkConflictError
	SchemaCreateError
	SchemaMigrateError

	// Cache errors
	CacheReadError
	CacheWriteError
	CacheClearError

	// Ingest errors
	IngestReadError
	IngestHeaderError

	// Metrics errors
	MetricsWriteError
)

// Process exit codes, one per failure class.
const (
	ExitUnknown        = 1
	ExitConfig         = 2
	ExitSource         = 3
	ExitWrite          = 4
	ExitSchemaMismatch = 5
	ExitCache          = 6
)

// ExitCode maps an error to the exit code of its failure class.
// Errors that are not *gn.Error map to ExitUnknown.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return ExitUnknown
	}

	switch gnErr.Code {
	case CreateDirError, CopyFileError, ReadFileError, CreateLogFileError,
		ConfigFileError, ConfigFiltersError, ConfigCredentialsError,
		ConfigDriverError:
		return ExitConfig
	case SourceConnectionError, SourceNotConnectedError, SourceQueryError,
		SourceTimeoutError:
		return ExitSource
	case SchemaMismatchError:
		return ExitSchemaMismatch
	case SinkOpenError, SinkWriteError, SinkCollectionError, SinkOptimizeError,
		SinkConflictError,
		SchemaCreateError, SchemaMigrateError, IngestReadError,
		IngestHeaderError, MetricsWriteError:
		return ExitWrite
	case CacheReadError, CacheWriteError, CacheClearError:
		return ExitCache
	default:
		return ExitUnknown
	}
}
