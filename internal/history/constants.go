package history

// mirrorFactor is the storage multiple used to keep history windows contiguous.
const mirrorFactor = 2
