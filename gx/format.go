package gx

// UploadFormat is the (format, type) pair the driver expects when
// uploading or clearing a texture of a given InternalFormat — spec §6's
// internal-format table. gx/gl46 feeds this straight into glTexImage2D.
type UploadFormat struct {
	Format uint32
	Type   uint32
}

// Internal format constants recognized by the internal-format table.
// Values match the GL enum values so backends can use InternalFormat
// directly as the sized-internalformat argument to glTexImage2D/
// glRenderbufferStorage without a conversion step.
const (
	R8                 InternalFormat = 0x8229
	R16F               InternalFormat = 0x822D
	R32F               InternalFormat = 0x822E
	RG8                InternalFormat = 0x822B
	RG16F              InternalFormat = 0x822F
	RG32F              InternalFormat = 0x8230
	RGB8               InternalFormat = 0x8051
	RGB16F             InternalFormat = 0x881B
	RGB32F             InternalFormat = 0x8815
	RGBA8              InternalFormat = 0x8058
	RGBA16F            InternalFormat = 0x881A
	RGBA32F            InternalFormat = 0x8814
	DepthComponent16   InternalFormat = 0x81A5
	DepthComponent24   InternalFormat = 0x81A6
	DepthComponent32F  InternalFormat = 0x8CAC
	Depth24Stencil8    InternalFormat = 0x88F0
	Depth32FStencil8   InternalFormat = 0x8CAD
)

const (
	glRED            = 0x1903
	glRG             = 0x8227
	glRGB            = 0x1907
	glRGBA           = 0x1908
	glDepthComponent = 0x1902
	glDepthStencil   = 0x84F9

	glUnsignedByte          = 0x1401
	glUnsignedShort         = 0x1403
	glUnsignedInt           = 0x1405
	glFloat                 = 0x1406
	glHalfFloat             = 0x140B
	glUnsignedInt24_8       = 0x84FA
	glFloat32UInt24_8Rev    = 0x8DAD
)

// uploadFormatTable is the exact lookup used by I/O resource texture
// creation (spec §6). Formats absent from the table fall back to
// (internal-as-unsigned-format, UNSIGNED_BYTE) per the documented default.
var uploadFormatTable = map[InternalFormat]UploadFormat{
	R8:                {Format: glRED, Type: glUnsignedByte},
	R16F:              {Format: glRED, Type: glHalfFloat},
	R32F:              {Format: glRED, Type: glFloat},
	RG8:               {Format: glRG, Type: glUnsignedByte},
	RG16F:             {Format: glRG, Type: glHalfFloat},
	RG32F:             {Format: glRG, Type: glFloat},
	RGB8:              {Format: glRGB, Type: glUnsignedByte},
	RGB16F:            {Format: glRGB, Type: glHalfFloat},
	RGB32F:            {Format: glRGB, Type: glFloat},
	RGBA8:             {Format: glRGBA, Type: glUnsignedByte},
	RGBA16F:           {Format: glRGBA, Type: glHalfFloat},
	RGBA32F:           {Format: glRGBA, Type: glFloat},
	DepthComponent16:  {Format: glDepthComponent, Type: glUnsignedShort},
	DepthComponent24:  {Format: glDepthComponent, Type: glUnsignedInt},
	DepthComponent32F: {Format: glDepthComponent, Type: glFloat},
	Depth24Stencil8:   {Format: glDepthStencil, Type: glUnsignedInt24_8},
	Depth32FStencil8:  {Format: glDepthStencil, Type: glFloat32UInt24_8Rev},
}

// UploadFormatFor returns the (format, type) pair to use when allocating
// or uploading to a texture of the given internal format. Unknown
// internal formats fall back to (uint32(internal), UNSIGNED_BYTE), as
// the reference implementation does for exotic/compressed formats it
// does not special-case.
func UploadFormatFor(internal InternalFormat) UploadFormat {
	if uf, ok := uploadFormatTable[internal]; ok {
		return uf
	}
	return UploadFormat{Format: uint32(internal), Type: glUnsignedByte}
}
