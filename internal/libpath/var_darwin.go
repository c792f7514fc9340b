package libpath

// Var is the loader search variable on macOS.
const Var = "DYLD_LIBRARY_PATH"
