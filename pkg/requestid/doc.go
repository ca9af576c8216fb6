// Package requestid correlates backend calls with the operation that
// triggered them.
//
// A caller stores an id with WithContext; apiclient forwards it in the
// X-Request-ID header and LoggerExtractor attaches it to log records.
//
//	ctx = requestid.WithContext(ctx, requestid.New())
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
