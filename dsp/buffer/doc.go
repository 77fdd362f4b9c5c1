// Package buffer provides a planar multichannel audio block used to move
// samples between a host callback and the synthesis voice. A Block is sized
// once and reused; none of its methods allocate after construction.
package buffer
