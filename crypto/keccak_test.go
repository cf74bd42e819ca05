package crypto

import (
	"encoding/hex"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKeccak256(t *testing.T) {
	Convey("Keccak256", t, func() {
		Convey("of an empty input matches the known digest", func() {
			got := hex.EncodeToString(Keccak256())
			So(got, ShouldEqual, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
		})

		Convey("hashes the concatenation of all chunks", func() {
			So(Keccak256([]byte("pay"), []byte("chan")), ShouldResemble, Keccak256([]byte("paychan")))
		})

		Convey("is not NIST SHA3", func() {
			// SHA3-256 of an empty string starts with a7ffc6f8
			So(hex.EncodeToString(Keccak256([]byte{})), ShouldNotStartWith, "a7ffc6f8")
		})
	})
}

func TestSignedMessageHash(t *testing.T) {
	Convey("SignedMessageHash", t, func() {
		Convey("prefixes the message with its length", func() {
			got := hex.EncodeToString(SignedMessageHash([]byte("Hello World")))
			So(got, ShouldEqual, "a1de988600a42c4b4ab089b619297c17d53cffae5d5120d82d8a92d0bb3b78f2")
		})

		Convey("uses the decimal length of a 32 byte digest", func() {
			digest := Keccak256([]byte("claim"))
			want := Keccak256([]byte("\x19Ethereum Signed Message:\n32"), digest)
			So(SignedMessageHash(digest), ShouldResemble, want)
		})
	})
}
