package jsoncompat

// Encoder is satisfied by both the sonic and the standard library encoders.
type Encoder interface {
	Encode(v any) error
}

// Decoder is satisfied by both the sonic and the standard library decoders.
type Decoder interface {
	Decode(v any) error
}
