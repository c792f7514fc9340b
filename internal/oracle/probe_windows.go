package oracle

const clientLibrary = "oci.dll"

func defaultClientDirs() []string {
	return globDirs(
		`C:\oracle\instantclient*`,
		`C:\instantclient*`,
	)
}
