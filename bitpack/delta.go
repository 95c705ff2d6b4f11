package bitpack

// DeltaEncode rewrites values in place as zigzag-encoded deltas, each from
// its predecessor, seeding the chain with base. Within a sorted run the
// deltas are small non-negative numbers; where a block crosses a column
// boundary the sequence may drop, which zigzag absorbs. The transform is
// invertible modulo 2^32 for arbitrary inputs.
func DeltaEncode(values []uint32, base uint32) {
	prev := base
	for i, v := range values {
		values[i] = zigzag(int32(v - prev))
		prev = v
	}
}

// DeltaDecode undoes DeltaEncode in place, using the same base.
func DeltaDecode(values []uint32, base uint32) {
	prev := base
	for i := range values {
		prev += unzigzag(values[i])
		values[i] = prev
	}
}

func zigzag(d int32) uint32 {
	return uint32((d << 1) ^ (d >> 31))
}

// unzigzag returns the delta as a uint32 so that addition wraps the same
// way the encoder's subtraction did.
func unzigzag(z uint32) uint32 {
	return uint32(int32(z>>1) ^ -int32(z&1))
}
