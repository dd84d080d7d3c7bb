// Package testutil provides shared test doubles for the transcriber packages.
//
//   - MockServices: testify mocks of the HTTP service interfaces, used by handler tests
//   - MockTranscriber: a scriptable api.Transcriber that records every request
//   - fixtures: sample uploads and history records
package testutil
