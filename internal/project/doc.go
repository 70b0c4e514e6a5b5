// Package project loads export projects from YAML.
//
// A project file declares tables (fields, rows and index export rules),
// generator options and the localization source:
//
//	options:
//	  column_info: true
//	  row_offset: 4
//	lang:
//	  file: lang.txt
//	  encoding: gbk
//	tables:
//	  - name: item
//	    exports: ["byName:name{id}"]
//	    fields:
//	      - {name: id, type: int}
//	      - {name: name, type: string, desc: display name}
//	      - {name: drops, type: "tableString[k:#seq|v:#1(int)]"}
//	      - name: pos
//	        type: dict
//	        fields: [{name: x, type: int}, {name: y, type: int}]
//	    rows:
//	      - {id: 1, name: Sword, drops: "3;4", pos: {x: 1, y: 2}}
//	      - {id: 2, name: Shield, pos: -1}
//
// Dict and array cells left out, null or -1 are marked invalid and render
// as nil. Array children without a name are named by position: [1], [2].
package project
