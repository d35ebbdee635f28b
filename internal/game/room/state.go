package room

// RoomState is the lifecycle stage of a room.
type RoomState int

const (
	RoomStateWaiting RoomState = iota
	RoomStatePlaying
	RoomStateEnded
)

func (s RoomState) String() string {
	switch s {
	case RoomStateWaiting:
		return "waiting"
	case RoomStatePlaying:
		return "playing"
	case RoomStateEnded:
		return "ended"
	default:
		return "unknown"
	}
}
