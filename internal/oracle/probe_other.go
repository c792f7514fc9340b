//go:build !windows && !darwin

package oracle

const clientLibrary = "libclntsh.so"

func defaultClientDirs() []string {
	return globDirs(
		"/usr/lib/oracle/*/client64/lib",
		"/opt/oracle/instantclient*",
		"/usr/lib64",
		"/usr/lib",
		"/usr/local/lib",
	)
}
