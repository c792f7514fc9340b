package libpath

// Var is the loader search variable on Windows.
const Var = "PATH"
