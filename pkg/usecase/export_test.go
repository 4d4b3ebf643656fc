package usecase

// Export unexported functions for testing
var (
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
	IsBinaryForTest                    = isBinary
)
