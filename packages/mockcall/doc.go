// Package mockcall verifies how a mocked method was invoked.
//
// Call records come from a Recorder: testify mocks are adapted with FromMock
// and hand written fakes can embed a Spy. Argument patterns are checked with
// the structural matcher, so a single expected argument may use regular
// expressions, the "_mock_" sentinel and identifier rules.
package mockcall
