package buildsys

// CompilerArgs renders the compile-side fields as GCC/Clang style arguments:
// -D for defines, -I for include paths, then the extra compiler flags.
// Placeholders and command substitutions are passed through untouched.
func (d *Descriptor) CompilerArgs() []string {
	fs := &d.fields
	args := make([]string, 0, len(fs[Defines])+len(fs[IncludePaths])+len(fs[CompilerFlags]))
	for _, def := range fs[Defines] {
		args = append(args, "-D"+def)
	}
	for _, dir := range fs[IncludePaths] {
		args = append(args, "-I"+dir)
	}
	return append(args, fs[CompilerFlags]...)
}

// LinkerArgs renders the link-side fields: -L for library paths, -l for
// library files, -framework for frameworks, then the extra linker flags.
func (d *Descriptor) LinkerArgs() []string {
	fs := &d.fields
	args := make([]string, 0, len(fs[LibraryPaths])+len(fs[LibraryFiles])+2*len(fs[Frameworks])+len(fs[LinkerFlags]))
	for _, dir := range fs[LibraryPaths] {
		args = append(args, "-L"+dir)
	}
	for _, lib := range fs[LibraryFiles] {
		args = append(args, "-l"+lib)
	}
	for _, fw := range fs[Frameworks] {
		args = append(args, "-framework", fw)
	}
	return append(args, fs[LinkerFlags]...)
}
