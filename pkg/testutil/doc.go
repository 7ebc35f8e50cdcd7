// Package testutil provides test helpers built on fixtures.
//
// Helpers take a testing.TB, fail the test on setup errors and register
// cleanup with t.Cleanup, so callers never handle teardown themselves:
//
//	tmp := testutil.TempFixture(t, `
//	    //- /src/lib.rs
//	    pub fn f() {}
//	`)
//	runTool(tmp.Root)
//	testutil.AssertFixtureEqual(t, `
//	    //- /src/lib.rs
//	    pub fn f() {}
//	`, tmp)
package testutil
