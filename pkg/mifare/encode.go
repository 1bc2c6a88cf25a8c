package mifare

import "fmt"

// EncodeMfocGUI serializes a key table into the mfocGUI paired format:
// one buffer holding every A key in sector order and one holding every
// B key. Each buffer is KeyRegionBytes long (96 for 1K, 240 for 4K).
func EncodeMfocGUI(t *KeyTable) (aKeys, bKeys []byte) {
	region := t.Density.KeyRegionBytes()
	aKeys = make([]byte, 0, region)
	bKeys = make([]byte, 0, region)
	for _, p := range t.Pairs {
		aKeys = append(aKeys, p.KeyA[:]...)
		bKeys = append(bKeys, p.KeyB[:]...)
	}
	return aKeys, bKeys
}

// EncodeProxmark serializes a key table into the Proxmark dumpkeys.bin
// format: all A keys in sector order immediately followed by all B
// keys, 2*KeyRegionBytes total (192 for 1K, 480 for 4K).
func EncodeProxmark(t *KeyTable) []byte {
	aKeys, bKeys := EncodeMfocGUI(t)
	out := make([]byte, 0, len(aKeys)+len(bKeys))
	out = append(out, aKeys...)
	out = append(out, bKeys...)
	return out
}

// MfocGUIFilenames returns the file names the mfocGUI tooling expects
// for the paired key buffers: a<uid8>.dump and b<uid8>.dump.
func MfocGUIFilenames(uid UID) (aName, bName string) {
	return fmt.Sprintf("a%s.dump", uid), fmt.Sprintf("b%s.dump", uid)
}

// ProxmarkFilename returns the file name for the linear key buffer:
// <uid8>.bin.
func ProxmarkFilename(uid UID) string {
	return fmt.Sprintf("%s.bin", uid)
}
