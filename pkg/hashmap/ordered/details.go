package ordered

/*
	This hash map implementation uses a closed hashing (open addressing)
	technique with linear probing and robin hood displacement for resolving
	hash collisions, plus a doubly linked list threading every live entry in
	insertion order. More information about the techniques used here can be
	found in the links provided below:
	01) https://andre.arko.net/2017/08/24/robin-hood-hashing/
	02) https://cs.uwaterloo.ca/research/tr/1986/CS-86-14.pdf
	03) https://www.sebastiansylvan.com/post/robin-hood-hashing-should-be-your-default-hash-table-implementation/
	04) http://codecapsule.com/2013/11/17/robin-hood-hashing-backward-shift-deletion/
	05) https://lemire.me/blog/2019/02/08/faster-remainders-when-the-divisor-is-a-constant-beating-compilers-and-libdivide/

	The basic principal is:
	-----------------------
	1) Calculate the hash value and home bucket of the entry to be inserted.
	   Bucket counts come from a fixed ladder of primes and the reduction is
	   done with a precomputed reciprocal instead of a hardware divide.
	2) Search the position linearly, tracking the distance walked from the
	   home bucket (the probe length).
	3) If an empty bucket turns up, the entry goes there.
	4) If a resident entry has a shorter probe length than the one being
	   carried, swap them and keep walking with the displaced resident. This
	   evens out probe lengths across the table and bounds lookup cost.
	5) Deleting shifts the displaced run behind the vacated bucket backward
	   one slot instead of leaving a tombstone, so the probe length
	   invariant holds forever and lookups never degrade under churn.

	The linked list is independent of bucket positions. Buckets store node
	handles into an arena; resizing replays (hash, handle) pairs into fresh
	arrays and never touches the nodes themselves, so insertion order, value
	pointers and cursors all ride through rehashes untouched.
*/
