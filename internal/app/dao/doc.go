// Package dao maps entities between their three shapes.
//
//   - store: models.User / models.Evaluation / models.Metric as persisted
//   - server: UserServer / EvaluationServer, used by the staff service and
//     held in the cache (string ids, native dates, explicit nil)
//   - client: UserClient / EvaluationClient / MetricClient, the JSON
//     transport shape (ISO-8601 date strings, derived fields filled in)
//
// Writes go the other way through UserPatch and EvaluationPatch, which
// decode a JSON body into a $set document and remember which fields the
// caller actually sent.
//
// None of the mapping functions fail for well-typed input. Malformed
// values in a write body are coerced to nil unless the field is required,
// in which case a *models.ValidationError is returned.
package dao
