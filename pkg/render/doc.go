// Package render draws boards as text for terminals.
//
// [Text] prints the 12-column grid as a character map with one letter per
// block, optionally overlaying the ghost rectangle of a drag preview.
// [Legend] lists which block each letter stands for. Output is styled with
// lipgloss; set [Options.Plain] for unstyled text.
//
//	fmt.Println(render.Text(b, render.Options{}))
//	fmt.Println(render.Legend(b, render.Options{}))
package render
