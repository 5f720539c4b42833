// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oid

// CryptoPro returns a new table with names for the object identifiers found
// in CryptoPro CSP key containers, together with the GOST R 34.10/34.11
// algorithms and a few PKIX attributes commonly seen next to them.
func CryptoPro() Names {
	return Names{
		// CryptoPro key containers
		"1.2.643.2.2.36.0":    "cryptopro-XchA",
		"1.2.643.2.2.37.2.1":  "private-keys",
		"1.2.643.2.2.37.3.10": "Expiration???",
		"1.2.643.7.1.1.2.2":   "Hash???",
		"1.2.643.7.1.1.6.1":   "Elliptic-curve Diffie–Hellman 256",

		// GOST algorithms
		"1.2.643.2.2.3":     "id-GostR3411-94-with-GostR3410-2001",
		"1.2.643.2.2.9":     "id-GostR3411-94",
		"1.2.643.2.2.19":    "id-GostR3410-2001",
		"1.2.643.2.2.35.1":  "id-GostR3410-2001-CryptoPro-A-ParamSet",
		"1.2.643.2.2.30.1":  "id-GostR3411-94-CryptoProParamSet",
		"1.2.643.7.1.1.1.1": "id-tc26-gost3410-12-256",
		"1.2.643.7.1.1.1.2": "id-tc26-gost3410-12-512",
		"1.2.643.7.1.1.3.2": "id-tc26-signwithdigest-gost3410-12-256",
		"1.2.643.7.1.1.3.3": "id-tc26-signwithdigest-gost3410-12-512",

		// PKIX
		"1.2.840.113549.1.1.1":  "rsaEncryption",
		"1.2.840.113549.1.1.11": "sha256WithRSAEncryption",
		"1.2.840.10045.2.1":     "id-ecPublicKey",
		"2.5.4.3":               "commonName",
		"2.5.4.6":               "countryName",
		"2.5.4.10":              "organizationName",
	}
}
