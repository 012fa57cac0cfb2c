package keydef

// table is the generated key-name table, ported key-for-key from the
// Windows virtual-key and PS/2 set-1 scan-code constants the original
// remapper's key-name table was built from. Grounded on the teacher's
// eventCodes.go: one literal entry per key, named after the Windows VK_*
// constant it corresponds to.
var table = []Descriptor{
	{Name: "esc", ScanCode: 0x01, VirtualCode: 0x1B},
	{Name: "1", ScanCode: 0x02, VirtualCode: 0x31},
	{Name: "2", ScanCode: 0x03, VirtualCode: 0x32},
	{Name: "3", ScanCode: 0x04, VirtualCode: 0x33},
	{Name: "4", ScanCode: 0x05, VirtualCode: 0x34},
	{Name: "5", ScanCode: 0x06, VirtualCode: 0x35},
	{Name: "6", ScanCode: 0x07, VirtualCode: 0x36},
	{Name: "7", ScanCode: 0x08, VirtualCode: 0x37},
	{Name: "8", ScanCode: 0x09, VirtualCode: 0x38},
	{Name: "9", ScanCode: 0x0A, VirtualCode: 0x39},
	{Name: "0", ScanCode: 0x0B, VirtualCode: 0x30},
	{Name: "backspace", ScanCode: 0x0E, VirtualCode: 0x08},
	{Name: "tab", ScanCode: 0x0F, VirtualCode: 0x09},
	{Name: "q", ScanCode: 0x10, VirtualCode: 0x51},
	{Name: "w", ScanCode: 0x11, VirtualCode: 0x57},
	{Name: "e", ScanCode: 0x12, VirtualCode: 0x45},
	{Name: "r", ScanCode: 0x13, VirtualCode: 0x52},
	{Name: "t", ScanCode: 0x14, VirtualCode: 0x54},
	{Name: "y", ScanCode: 0x15, VirtualCode: 0x59},
	{Name: "u", ScanCode: 0x16, VirtualCode: 0x55},
	{Name: "i", ScanCode: 0x17, VirtualCode: 0x49},
	{Name: "o", ScanCode: 0x18, VirtualCode: 0x4F},
	{Name: "p", ScanCode: 0x19, VirtualCode: 0x50},
	{Name: "enter", ScanCode: 0x1C, VirtualCode: 0x0D},
	{Name: "lctrl", ScanCode: 0x1D, VirtualCode: 0xA2, IsModifier: true},
	{Name: "rctrl", ScanCode: 0x1D, VirtualCode: 0xA3, IsModifier: true, IsExtended: true},
	{Name: "a", ScanCode: 0x1E, VirtualCode: 0x41},
	{Name: "s", ScanCode: 0x1F, VirtualCode: 0x53},
	{Name: "d", ScanCode: 0x20, VirtualCode: 0x44},
	{Name: "f", ScanCode: 0x21, VirtualCode: 0x46},
	{Name: "g", ScanCode: 0x22, VirtualCode: 0x47},
	{Name: "h", ScanCode: 0x23, VirtualCode: 0x48},
	{Name: "j", ScanCode: 0x24, VirtualCode: 0x4A},
	{Name: "k", ScanCode: 0x25, VirtualCode: 0x4B},
	{Name: "l", ScanCode: 0x26, VirtualCode: 0x4C},
	{Name: "lshift", ScanCode: 0x2A, VirtualCode: 0xA0, IsModifier: true},
	{Name: "z", ScanCode: 0x2C, VirtualCode: 0x5A},
	{Name: "x", ScanCode: 0x2D, VirtualCode: 0x58},
	{Name: "c", ScanCode: 0x2E, VirtualCode: 0x43},
	{Name: "v", ScanCode: 0x2F, VirtualCode: 0x56},
	{Name: "b", ScanCode: 0x30, VirtualCode: 0x42},
	{Name: "n", ScanCode: 0x31, VirtualCode: 0x4E},
	{Name: "m", ScanCode: 0x32, VirtualCode: 0x4D},
	{Name: "rshift", ScanCode: 0x36, VirtualCode: 0xA1, IsModifier: true},
	{Name: "lalt", ScanCode: 0x38, VirtualCode: 0xA4, IsModifier: true},
	{Name: "ralt", ScanCode: 0x38, VirtualCode: 0xA5, IsModifier: true, IsExtended: true},
	{Name: "space", ScanCode: 0x39, VirtualCode: 0x20},
	{Name: "capslock", ScanCode: 0x3A, VirtualCode: 0x14},
	{Name: "f1", ScanCode: 0x3B, VirtualCode: 0x70},
	{Name: "f2", ScanCode: 0x3C, VirtualCode: 0x71},
	{Name: "f3", ScanCode: 0x3D, VirtualCode: 0x72},
	{Name: "f4", ScanCode: 0x3E, VirtualCode: 0x73},
	{Name: "f5", ScanCode: 0x3F, VirtualCode: 0x74},
	{Name: "f6", ScanCode: 0x40, VirtualCode: 0x75},
	{Name: "f7", ScanCode: 0x41, VirtualCode: 0x76},
	{Name: "f8", ScanCode: 0x42, VirtualCode: 0x77},
	{Name: "f9", ScanCode: 0x43, VirtualCode: 0x78},
	{Name: "f10", ScanCode: 0x44, VirtualCode: 0x79},
	{Name: "f11", ScanCode: 0x57, VirtualCode: 0x7A},
	{Name: "f12", ScanCode: 0x58, VirtualCode: 0x7B},
	{Name: "lwin", ScanCode: 0x5B, VirtualCode: 0x5B, IsExtended: true},
	{Name: "rwin", ScanCode: 0x5C, VirtualCode: 0x5C, IsExtended: true},
	{Name: "up", ScanCode: 0x48, VirtualCode: 0x26, IsExtended: true},
	{Name: "left", ScanCode: 0x4B, VirtualCode: 0x25, IsExtended: true},
	{Name: "right", ScanCode: 0x4D, VirtualCode: 0x27, IsExtended: true},
	{Name: "down", ScanCode: 0x50, VirtualCode: 0x28, IsExtended: true},
	{Name: "insert", ScanCode: 0x52, VirtualCode: 0x2D, IsExtended: true},
	{Name: "delete", ScanCode: 0x53, VirtualCode: 0x2E, IsExtended: true},
	{Name: "home", ScanCode: 0x47, VirtualCode: 0x24, IsExtended: true},
	{Name: "end", ScanCode: 0x4F, VirtualCode: 0x23, IsExtended: true},
	{Name: "pageup", ScanCode: 0x49, VirtualCode: 0x21, IsExtended: true},
	{Name: "pagedown", ScanCode: 0x51, VirtualCode: 0x22, IsExtended: true},
}
