package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"
)

var byteOrder = binary.LittleEndian

// writeString writes a uint16 length-prefixed UTF-8 string.
func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("string too long: %d", len(s))
	}
	if err := binary.Write(w, byteOrder, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// readString reads a uint16 length-prefixed UTF-8 string.
func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// writeStringList writes a uint16 count followed by each string.
func writeStringList(w io.Writer, list []string) error {
	if err := binary.Write(w, byteOrder, uint16(len(list))); err != nil {
		return err
	}
	for _, s := range list {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func readStringList(r io.Reader) ([]string, error) {
	var count uint16
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, err
	}
	list := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// writeBitmap writes a Roaring Bitmap as uint32 length + MarshalBinary bytes.
func writeBitmap(w io.Writer, bm *roaring.Bitmap) error {
	buf, err := bm.MarshalBinary()
	if err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(len(buf))); err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

func readBitmap(r io.Reader) (*roaring.Bitmap, error) {
	var length uint32
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	bm := roaring.New()
	if err := bm.UnmarshalBinary(buf); err != nil {
		return nil, fmt.Errorf("roaring unmarshal: %w", err)
	}
	return bm, nil
}

// MarshalBinary encodes the sale config record.
// Format: admin creator max_supply cur_num og/wl/public max og/wl/public
// price priority_list stage base_uri frozen.
func (c *SaleConfig) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeString(&buf, c.Admin); err != nil {
		return nil, err
	}
	if err := writeString(&buf, c.Creator); err != nil {
		return nil, err
	}
	for _, v := range []uint64{c.MaxSupply, c.CurNum, c.OGMax, c.WLMax, c.PublicMax, c.OGPrice, c.WLPrice, c.PublicPrice} {
		if err := binary.Write(&buf, byteOrder, v); err != nil {
			return nil, err
		}
	}
	if err := writeStringList(&buf, c.PriorityList); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, byteOrder, int8(c.CurStage)); err != nil {
		return nil, err
	}
	if err := writeString(&buf, c.BaseURI); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, byteOrder, c.Frozen); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *SaleConfig) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var err error
	if c.Admin, err = readString(r); err != nil {
		return err
	}
	if c.Creator, err = readString(r); err != nil {
		return err
	}
	for _, v := range []*uint64{&c.MaxSupply, &c.CurNum, &c.OGMax, &c.WLMax, &c.PublicMax, &c.OGPrice, &c.WLPrice, &c.PublicPrice} {
		if err := binary.Read(r, byteOrder, v); err != nil {
			return err
		}
	}
	if c.PriorityList, err = readStringList(r); err != nil {
		return err
	}
	var stage int8
	if err := binary.Read(r, byteOrder, &stage); err != nil {
		return err
	}
	c.CurStage = Stage(stage)
	if c.BaseURI, err = readString(r); err != nil {
		return err
	}
	return binary.Read(r, byteOrder, &c.Frozen)
}

func (e *AllowListEntry) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	for _, s := range []string{e.User, e.Config, e.Initializer} {
		if err := writeString(&buf, s); err != nil {
			return nil, err
		}
	}
	if err := binary.Write(&buf, byteOrder, e.Count); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *AllowListEntry) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var err error
	if e.User, err = readString(r); err != nil {
		return err
	}
	if e.Config, err = readString(r); err != nil {
		return err
	}
	if e.Initializer, err = readString(r); err != nil {
		return err
	}
	return binary.Read(r, byteOrder, &e.Count)
}

func (u *UserCounter) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, u.CurNum); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (u *UserCounter) UnmarshalBinary(data []byte) error {
	return binary.Read(bytes.NewReader(data), byteOrder, &u.CurNum)
}

func (b *Balance) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, byteOrder, b.Amount); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Balance) UnmarshalBinary(data []byte) error {
	return binary.Read(bytes.NewReader(data), byteOrder, &b.Amount)
}

func writeAsset(w io.Writer, a *Asset) error {
	if err := binary.Write(w, byteOrder, a.Index); err != nil {
		return err
	}
	for _, s := range []string{a.Owner, a.URI, a.Title, a.Symbol} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	if err := binary.Write(w, byteOrder, uint8(len(a.Creators))); err != nil {
		return err
	}
	for _, c := range a.Creators {
		if err := writeString(w, c.Address); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, c.Share); err != nil {
			return err
		}
	}
	return nil
}

func readAsset(r io.Reader) (*Asset, error) {
	a := &Asset{}
	if err := binary.Read(r, byteOrder, &a.Index); err != nil {
		return nil, err
	}
	var err error
	if a.Owner, err = readString(r); err != nil {
		return nil, err
	}
	if a.URI, err = readString(r); err != nil {
		return nil, err
	}
	if a.Title, err = readString(r); err != nil {
		return nil, err
	}
	if a.Symbol, err = readString(r); err != nil {
		return nil, err
	}
	var creators uint8
	if err := binary.Read(r, byteOrder, &creators); err != nil {
		return nil, err
	}
	a.Creators = make([]CreatorShare, 0, creators)
	for i := uint8(0); i < creators; i++ {
		var c CreatorShare
		if c.Address, err = readString(r); err != nil {
			return nil, err
		}
		if err := binary.Read(r, byteOrder, &c.Share); err != nil {
			return nil, err
		}
		a.Creators = append(a.Creators, c)
	}
	return a, nil
}

func (b *AssetBook) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeBitmap(&buf, b.Issued); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, byteOrder, uint32(len(b.Assets))); err != nil {
		return nil, err
	}
	for _, a := range b.Assets {
		if err := writeAsset(&buf, a); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (b *AssetBook) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	issued, err := readBitmap(r)
	if err != nil {
		return err
	}
	var count uint32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return err
	}
	assets := make([]*Asset, 0, count)
	for i := uint32(0); i < count; i++ {
		a, err := readAsset(r)
		if err != nil {
			return err
		}
		assets = append(assets, a)
	}
	b.Issued = issued
	b.Assets = assets
	return nil
}
