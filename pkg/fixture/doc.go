// Package fixture defines multi-file test trees inline, writes them to disk
// and renders disk state back into text for snapshot assertions.
//
// A fixture is plain text. Without markers the whole text is a single file
// at DefaultPath:
//
//	f := fixture.MustParse(`
//	    fn main() {
//	        println!("Hello World")
//	    }
//	`)
//	// f.Files[0].Path == "/main.rs"
//
// Lines starting with the marker token "//-" open a new file whose path is
// the first word after the marker:
//
//	f := fixture.MustParse(`
//	    //- /main.rs
//	    mod foo;
//	    fn main() { foo::bar(); }
//
//	    //- /foo.rs
//	    pub fn bar() {}
//	`)
//
// Common indentation is removed first (see TrimIndent), so fixtures can be
// indented with the surrounding Go code.
//
// Materializing a fixture allocates a fresh temporary directory owned by the
// returned TempFixture; Close removes it:
//
//	temp, err := f.WriteToTempDir()
//	defer temp.Close()
//	// ... run the code under test against temp.Root ...
//	got, err := temp.ReadAllFromDisk()
//	out, err := fixture.NewRenderer(got).NormalizeGitHashes().Render()
//
// Rendering is the inverse of parsing: a single file renders as its raw text,
// several files render as "//- /path" blocks.
package fixture
