package oracle

const clientLibrary = "libclntsh.dylib"

func defaultClientDirs() []string {
	return globDirs(
		"/opt/oracle/instantclient*",
		"/opt/homebrew/lib",
		"/usr/local/lib",
	)
}
