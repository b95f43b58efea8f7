// Package hashing computes digests of byte streams and files with chunked
// reads, supporting md5, sha256 and blake2b.
//
//	d, err := hashing.File("data.bin", hashing.WithAlgorithm(hashing.Blake2b))
//	fmt.Println(d.Hex())
package hashing
