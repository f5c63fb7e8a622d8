package psuutils

// LoadInventoryPaths returns the InventoryPathKey list of the document at
// configPath. A missing file, a missing key or a malformed value all yield nil.
func LoadInventoryPaths(configPath string, logger Logger) []ObjectPath {
	if logger == nil {
		logger = NopLogger()
	}
	doc, ok := LoadDocument(configPath, logger)
	if !ok {
		return nil
	}
	if !doc.Has(InventoryPathKey) {
		logger.Warn("unable to find "+InventoryPathKey, "path", configPath)
	}

	var paths []ObjectPath
	if err := doc.Decode(InventoryPathKey, &paths); err != nil {
		logger.Error("invalid "+InventoryPathKey, "path", configPath, "err", err)
		return nil
	}
	return paths
}
