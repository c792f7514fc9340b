//go:build !windows && !darwin

package libpath

// Var is the loader search variable on Linux and other Unix systems.
const Var = "LD_LIBRARY_PATH"
