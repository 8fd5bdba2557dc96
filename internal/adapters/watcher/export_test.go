// export_test.go exports private functions for white-box testing.
package watcher

// ConvertEvent exports convertEvent for testing.
var ConvertEvent = convertEvent
