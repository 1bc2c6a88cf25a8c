/*
Package mifare extracts sector keys from raw MIFARE Classic memory dumps
and re-encodes them for downstream tooling, and can acquire a dump
directly from a card in a PC/SC reader.

# Memory Layout

A MIFARE Classic dump is a flat image of the card's EEPROM:

	1K: 16 sectors x 4 blocks x 16 bytes = 1024 bytes
	4K: 32 sectors x 4 blocks + 8 sectors x 16 blocks = 4096 bytes

The last block of every sector is the sector trailer:

	[0:6]   key A
	[6:10]  access condition bytes (not interpreted here)
	[10:16] key B

The first trailer sits at byte offset 0x30 (block 3). Trailers of the
4-block sectors are 0x40 bytes apart, so after reading one trailer the
cursor skips 0x30 bytes to reach the next. From sector index 31 onward
(4K cards only) sectors have 16 blocks and the skip grows to 0xF0.

Block 0 holds the manufacturer data; its first 4 bytes are the numeric
UID used for display and output filenames.

# Output Formats

Two encoders serialize a decoded KeyTable:

	mfocGUI:  two files, a<uid8>.dump and b<uid8>.dump, holding the
	          concatenated A keys and B keys (96 bytes for 1K, 240 for 4K)
	Proxmark: one file, <uid8>.bin, holding all A keys followed by all
	          B keys (192 or 480 bytes)

<uid8> is the UID as 8 lowercase hex digits.

# Card Acquisition

ReadCardDump images a live card through the PC/SC pseudo-APDUs defined
for contactless storage cards:

	FF 82 00 00 06 <key>                    Load Authentication Keys
	FF 86 00 00 05 01 00 <blk> <60|61> 00   General Authenticate (A/B)
	FF B0 00 <blk> 10                       Read Binary (one block)
	FF CA 00 00 00                          Get Data (UID)

Every sector is authenticated at its trailer block with one
caller-supplied key before its blocks are read. Readers report failure
of these commands with SW=0x6300; see SWError.

The Card interface abstracts transmit behavior so the acquisition path
can be exercised against test doubles without hardware.
*/
package mifare
