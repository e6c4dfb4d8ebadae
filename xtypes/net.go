// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package xtypes

import (
	"net/netip"
	"net/url"

	"github.com/chunkcodec/chunkcodec"
	"github.com/chunkcodec/chunkcodec/internal/wire"
)

// URLCodec encodes a *url.URL as its dedup-eligible string form
// (url.URL.String()), reusing Context's string table the same way
// record field names do — with dedup on, a URL string that repeats
// exactly is written in full only once; URLs that merely share an
// origin are each written in full.
var URLCodec chunkcodec.Codec[*url.URL] = chunkcodec.NewCodec(
	func(ctx *chunkcodec.Context, out *wire.Writer, v *url.URL) error {
		ctx.WriteText(out, v.String())
		return nil
	},
	func(ctx *chunkcodec.Context, in *wire.Reader) (*url.URL, error) {
		s, err := ctx.ReadText(in)
		if err != nil {
			return nil, err
		}
		u, err := url.Parse(s)
		if err != nil {
			return nil, chunkcodec.WrapError(chunkcodec.KindInvalidCharacter, err, "parsing url %q", s)
		}
		return u, nil
	},
)

const (
	ipTagV4 = 4
	ipTagV6 = 6
)

// IPAddrCodec encodes a netip.Addr as a 1-byte family tag (4 or 6)
// followed by the address's 4 or 16 raw bytes. IPv4-mapped IPv6
// addresses are unmapped first so the same address always takes the
// shorter wire form.
var IPAddrCodec chunkcodec.Codec[netip.Addr] = chunkcodec.NewCodec(
	func(_ *chunkcodec.Context, out *wire.Writer, v netip.Addr) error {
		v = v.Unmap()
		if v.Is4() {
			out.WriteByte(ipTagV4)
			b := v.As4()
			out.WriteBytes(b[:])
			return nil
		}
		out.WriteByte(ipTagV6)
		b := v.As16()
		out.WriteBytes(b[:])
		return nil
	},
	func(_ *chunkcodec.Context, in *wire.Reader) (netip.Addr, error) {
		tag, err := in.ReadByte()
		if err != nil {
			return netip.Addr{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading ip address family tag")
		}
		switch tag {
		case ipTagV4:
			b, err := in.ReadN(4)
			if err != nil {
				return netip.Addr{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading ipv4 bytes")
			}
			return netip.AddrFrom4([4]byte(b)), nil
		case ipTagV6:
			b, err := in.ReadN(16)
			if err != nil {
				return netip.Addr{}, chunkcodec.WrapError(chunkcodec.KindUnexpectedEndOfInput, err, "reading ipv6 bytes")
			}
			return netip.AddrFrom16([16]byte(b)), nil
		default:
			return netip.Addr{}, chunkcodec.NewError(chunkcodec.KindInvalidCharacter, "unknown ip address family tag %d", tag)
		}
	},
)
