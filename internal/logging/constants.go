package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldInputFile     = "input_file"
	FieldHistoryFile   = "history_file"
	FieldArchiveDir    = "archive_dir"
	FieldCacheFile     = "cache_file"
	FieldCategory      = "category"
	FieldPredicted     = "predicted"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldCount         = "count"
	FieldCategories    = "categories"
	FieldVocabulary    = "vocabulary_size"
	FieldExamples      = "examples"
	FieldDelimiter     = "delimiter"
	FieldScoring       = "scoring"
	FieldTokenizer     = "tokenizer"
	FieldAccuracy      = "accuracy"
	FieldMisclassified = "misclassified"
)
